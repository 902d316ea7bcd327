package pageloadtests

import (
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoRedirectTests(t *T) {
	t.Run("follows redirects sent in the HTTP response headers", func(t *T) {
		t.NavigateToPage(webserver.RedirectPage)
		t.RequireTitle(webserver.DestinationPageTitle)
		t.RequireCurrentURL(t.PageURL(webserver.DestinationPage))
	})

	t.Run("follows a meta refresh redirect", func(t *T) {
		t.NavigateToPage(webserver.MetaRedirectPage)
		// The browser performs this navigation on its own after the document
		// loads, so there is nothing to block on.
		t.RequireEventualTitle(webserver.DestinationPageTitle)
		t.RequireElementText("#arrived", "You have arrived.")
	})
}
