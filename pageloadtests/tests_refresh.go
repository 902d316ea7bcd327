package pageloadtests

import (
	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoRefreshTests(t *T) {
	t.Run("can refresh a page", func(t *T) {
		t.RequireCapability(browser.CapabilityRefresh)

		t.NavigateToPage(webserver.AnchorsPage)
		t.fixture.Server.DrainRequests()

		require.NoError(t, t.Driver().Refresh())

		t.RequireTitle(webserver.AnchorsPageTitle)
		t.RequireCurrentURL(t.PageURL(webserver.AnchorsPage))
		// A refresh must actually re-fetch the page, not just redraw it.
		t.RequireServerSawRequestFor(webserver.AnchorsPage)
	})
}
