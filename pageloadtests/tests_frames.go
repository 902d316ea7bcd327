package pageloadtests

import (
	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func DoFrameTests(t *T) {
	t.Run("loads a frameset and waits until all frames are loaded", func(t *T) {
		t.RequireCapability(browser.CapabilityFrames)

		t.NavigateToPage(webserver.FramesPage)
		t.RequireTitle(webserver.FramesPageTitle)

		header, err := t.Driver().FrameText(webserver.HeaderFrameName, "#frame-label")
		require.NoError(t, err)
		require.Equal(t, "header", header)

		content, err := t.Driver().FrameText(webserver.ContentFrameName, "#frame-label")
		require.NoError(t, err)
		require.Equal(t, "content", content)
	})
}
