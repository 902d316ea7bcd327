package pageloadtests

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/framework"
)

const awaitTitleTimeout = time.Second * 5
const awaitTitleInterval = time.Millisecond * 100
const awaitRequestTimeout = time.Second * 5

// T represents a test or subtest in the page-loading suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as per-test debug logging provided by the lower-level framework package.
//
// It also carries the shared fixture. All T instances in a run refer to the
// same browser session and web server; there is deliberately no per-test
// setup, because the suite is checking the behavior of one live session as it
// navigates from page to page.
//
// To make test assertions, use the assert and require packages, passing the
// *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	fixture *Fixture
}

func newTestScope(context *framework.Context, fixture *Fixture) *T {
	return &T{context: context, fixture: fixture}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest against the same shared fixture. This is equivalent to
// the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.fixture))
	})
}

// Debug logs some debug output for the test. The output is passed to the test
// logger when the test ends.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer registers a cleanup to run when this test finishes.
func (t *T) Defer(cleanup func()) {
	t.context.Defer(cleanup)
}

// Driver returns the shared browser session.
func (t *T) Driver() browser.Driver {
	return t.fixture.Driver
}

// PageURL returns the full URL of a fixture page on the shared web server.
func (t *T) PageURL(path string) string {
	return t.fixture.Server.PageURL(path)
}

// RequireCapability skips this test if the browser driver did not declare
// support for the given capability.
func (t *T) RequireCapability(capability string) {
	for _, c := range t.fixture.Driver.Capabilities() {
		if c == capability {
			return
		}
	}
	t.context.SkipWithReason(fmt.Sprintf("browser driver does not have capability %q", capability))
}

// NavigateToPage points the browser at a fixture page and fails the test
// immediately if navigation errors.
func (t *T) NavigateToPage(path string) {
	t.NavigateTo(t.PageURL(path))
}

// NavigateTo points the browser at an arbitrary URL.
func (t *T) NavigateTo(url string) {
	t.Debug("navigating to %s", url)
	require.NoError(t, t.fixture.Driver.Get(url), "navigation to %s failed", url)
}

// RequireTitle fails the test unless the current document title matches.
func (t *T) RequireTitle(expected string) {
	title, err := t.fixture.Driver.Title()
	require.NoError(t, err)
	require.Equal(t, expected, title, "unexpected document title")
}

// RequireEventualTitle waits for the document title to become the expected
// value, for navigations the browser performs on its own (such as a meta
// refresh) where there is no driver call to block on.
func (t *T) RequireEventualTitle(expected string) {
	deadline := time.Now().Add(awaitTitleTimeout)
	var last string
	for time.Now().Before(deadline) {
		title, err := t.fixture.Driver.Title()
		require.NoError(t, err)
		if title == expected {
			return
		}
		last = title
		time.Sleep(awaitTitleInterval)
	}
	t.Errorf("timed out waiting for document title %q; last seen title was %q", expected, last)
	t.FailNow()
}

// RequireCurrentURL fails the test unless the browser's address is exactly
// the given URL.
func (t *T) RequireCurrentURL(expected string) {
	current, err := t.fixture.Driver.CurrentURL()
	require.NoError(t, err)
	require.Equal(t, expected, current, "unexpected current URL")
}

// RequireElementText fails the test unless the first element matching the CSS
// selector has exactly the given visible text.
func (t *T) RequireElementText(selector, expected string) {
	text, err := t.fixture.Driver.ElementText(selector)
	require.NoError(t, err, "could not read element %q", selector)
	require.Equal(t, expected, text, "unexpected text in element %q", selector)
}

// RequireServerSawRequestFor fails the test unless the fixture web server
// receives a request for the given page path. Unrelated requests (favicons
// and the like) are ignored.
func (t *T) RequireServerSawRequestFor(path string) {
	deadline := time.Now().Add(awaitRequestTimeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Errorf("timed out waiting for the web server to receive a request for %s", path)
			t.FailNow()
		}
		info, err := t.fixture.Server.AwaitRequest(remaining)
		require.NoError(t, err, "timed out waiting for the web server to receive a request for %s", path)
		if info.Request.URL.Path == path {
			return
		}
		t.Debug("ignoring request for %s", info.Request.URL.Path)
	}
}
