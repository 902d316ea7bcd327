package pageloadtests

import (
	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoFragmentTests(t *T) {
	t.Run("can get a fragment on the current page", func(t *T) {
		t.RequireCapability(browser.CapabilityFragments)

		t.NavigateToPage(webserver.AnchorsPage)
		t.NavigateTo(t.PageURL(webserver.AnchorsPage) + "#section-bottom")

		t.RequireCurrentURL(t.PageURL(webserver.AnchorsPage) + "#section-bottom")
		t.RequireTitle(webserver.AnchorsPageTitle)
		t.RequireElementText("#section-bottom", "bottom section")
	})
}
