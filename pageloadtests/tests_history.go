package pageloadtests

import (
	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoHistoryTests(t *T) {
	t.Run("can navigate back in the browser history", func(t *T) {
		t.RequireCapability(browser.CapabilityHistory)

		t.NavigateToPage(webserver.SimplePage)
		t.NavigateToPage(webserver.DestinationPage)

		require.NoError(t, t.Driver().Back())
		t.RequireTitle(webserver.SimplePageTitle)
		t.RequireCurrentURL(t.PageURL(webserver.SimplePage))
	})

	t.Run("can navigate forward in the browser history", func(t *T) {
		t.RequireCapability(browser.CapabilityHistory)

		t.NavigateToPage(webserver.SimplePage)
		t.NavigateToPage(webserver.DestinationPage)

		require.NoError(t, t.Driver().Back())
		t.RequireTitle(webserver.SimplePageTitle)

		require.NoError(t, t.Driver().Forward())
		t.RequireTitle(webserver.DestinationPageTitle)
		t.RequireCurrentURL(t.PageURL(webserver.DestinationPage))
	})
}
