package pageloadtests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoDocumentLoadingTests(t *T) {
	t.Run("loads a simple static page", func(t *T) {
		t.NavigateToPage(webserver.SimplePage)
		t.RequireTitle(webserver.SimplePageTitle)
		t.RequireElementText("#heading", "A simple page")
	})

	t.Run("waits for the document to be loaded before returning", func(t *T) {
		// The server holds the whole response back for a while. If navigation
		// returned before the document was complete, the element lookup below
		// would have nothing to find.
		t.NavigateTo(t.PageURL(webserver.SlowPage) + "?ms=800")
		t.RequireTitle(webserver.SlowPageTitle)
		t.RequireElementText("#finished", "Finally loaded.")
	})

	t.Run("completes navigation to a page that does not exist", func(t *T) {
		url := t.PageURL("/pages/no-such-page")
		t.NavigateTo(url)
		t.RequireCurrentURL(url)

		// The title is browser-generated for error pages; all that matters is
		// that the session is still usable.
		_, err := t.Driver().Title()
		assert.NoError(t, err)
	})

	t.Run("completes navigation to a page that is gone", func(t *T) {
		url := t.PageURL(webserver.GonePage)
		t.NavigateTo(url)
		t.RequireCurrentURL(url)
	})

	t.Run("exposes the page source", func(t *T) {
		t.RequireCapability(browser.CapabilitySource)
		t.NavigateToPage(webserver.SimplePage)
		source, err := t.Driver().PageSource()
		require.NoError(t, err)
		assert.Contains(t, source, "A simple page")
	})
}
