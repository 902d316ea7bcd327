// Package browser connects to a browser by name and exposes the narrow driver
// handle the page-loading test suite needs. Two backends are supported: a
// remote WebDriver server (Selenium hub or a standalone driver such as
// IEDriverServer) and a locally launched Playwright browser.
package browser

import (
	"fmt"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/jlward/webdriver-contract-tests/framework"
)

// Capability names a behavior that a driver backend may or may not support.
// Tests that depend on a capability are skipped when the driver lacks it.
const (
	CapabilityHistory   = "history"
	CapabilityRefresh   = "refresh"
	CapabilityFrames    = "frames"
	CapabilityFragments = "fragments"
	CapabilitySource    = "page-source"
)

const DefaultRemoteURL = "http://localhost:4444/wd/hub"
const defaultConnectTimeout = time.Second * 30

// Driver is a live browser session. One Driver is shared by every test in a
// run; it is created before the first test and quit after the last.
type Driver interface {
	// Get navigates to the URL and blocks until the document has loaded.
	Get(url string) error
	Title() (string, error)
	CurrentURL() (string, error)
	Back() error
	Forward() error
	Refresh() error
	PageSource() (string, error)
	// ElementText returns the visible text of the first element matching the
	// CSS selector.
	ElementText(selector string) (string, error)
	// FrameText returns the visible text of the first element matching the
	// CSS selector inside the named frame.
	FrameText(frameName, selector string) (string, error)
	// Name identifies the browser, for logging.
	Name() string
	Capabilities() []string
	// Quit ends the browser session. Only the first call has any effect.
	Quit() error
}

// ConnectOptions configures how Connect reaches the browser. The zero value is
// usable: it targets the default local WebDriver hub.
type ConnectOptions struct {
	// RemoteURL is the WebDriver server address for remote backends.
	RemoteURL string

	// ConnectTimeout bounds how long Connect waits for the WebDriver server to
	// answer its status query before giving up.
	ConnectTimeout time.Duration

	// Headless applies to locally launched (Playwright) browsers only.
	Headless bool

	// PageLoadTimeoutMS, if set, bounds every navigation.
	PageLoadTimeoutMS ldvalue.OptionalInt

	Logger framework.Logger
}

func (o ConnectOptions) withDefaults() ConnectOptions {
	if o.RemoteURL == "" {
		o.RemoteURL = DefaultRemoteURL
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.Logger == nil {
		o.Logger = framework.NullLogger()
	}
	return o
}

// Connect opens a browser session for the named browser and returns its
// driver handle. Names understood by the remote backend are "ie", "firefox",
// "chrome", "edge", "safari", and "htmlunit"; the names "chromium", "webkit",
// and "playwright-firefox" launch a local browser through Playwright instead.
//
// A failure here means no tests can run, so errors are returned immediately
// with no retry beyond the bounded status wait.
func Connect(name string, opts ConnectOptions) (Driver, error) {
	opts = opts.withDefaults()

	if playwrightName, ok := playwrightBrowserNames[name]; ok {
		return connectPlaywright(playwrightName, opts)
	}
	if remoteName, ok := remoteBrowserNames[name]; ok {
		return connectRemote(remoteName, opts)
	}
	return nil, fmt.Errorf("unknown browser name %q", name)
}

func allCapabilities() []string {
	return []string{
		CapabilityHistory,
		CapabilityRefresh,
		CapabilityFrames,
		CapabilityFragments,
		CapabilitySource,
	}
}
