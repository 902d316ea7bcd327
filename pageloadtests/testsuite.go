package pageloadtests

import (
	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/framework"
)

// AllCapabilities lists every capability some test in the suite requires.
var AllCapabilities = []string{
	browser.CapabilityHistory,
	browser.CapabilityRefresh,
	browser.CapabilityFrames,
	browser.CapabilityFragments,
	browser.CapabilitySource,
}

// RunTestSuite executes every page-loading test against the shared fixture
// and returns the accumulated results. The fixture must already be set up;
// tearing it down afterwards is the caller's responsibility.
func RunTestSuite(
	fixture *Fixture,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, fixture)

		t.Run("document loading", DoDocumentLoadingTests)
		t.Run("redirects", DoRedirectTests)
		t.Run("fragments", DoFragmentTests)
		t.Run("frames", DoFrameTests)
		t.Run("history", DoHistoryTests)
		t.Run("refresh", DoRefreshTests)
	})
}
