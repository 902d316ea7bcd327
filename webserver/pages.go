package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// Paths of the fixture pages. The suite refers to pages by these constants
// rather than by literal URLs.
const (
	SimplePage       = "/pages/simple"
	DestinationPage  = "/pages/destination"
	RedirectPage     = "/redirect"
	MetaRedirectPage = "/pages/meta-redirect"
	AnchorsPage      = "/pages/anchors"
	FramesPage       = "/pages/frames"
	HeaderFramePage  = "/pages/frame/header"
	ContentFramePage = "/pages/frame/content"
	SlowPage         = "/pages/slow"
	GonePage         = "/pages/gone"
)

// Titles of the fixture pages, for navigation assertions.
const (
	SimplePageTitle      = "Simple Page"
	DestinationPageTitle = "Destination Page"
	AnchorsPageTitle     = "Anchors Page"
	FramesPageTitle      = "Frames Page"
	SlowPageTitle        = "Slow Page"
)

// Names of the frames in FramesPage.
const (
	HeaderFrameName  = "header"
	ContentFrameName = "content"
)

const slowPageDefaultDelay = time.Second
const slowPageMaxDelay = time.Second * 10

const simplePageHTML = `<!DOCTYPE html>
<html><head><title>` + SimplePageTitle + `</title></head>
<body><h1 id="heading">A simple page</h1>
<p id="para">Nothing here depends on scripts or external resources.</p>
</body></html>`

const destinationPageHTML = `<!DOCTYPE html>
<html><head><title>` + DestinationPageTitle + `</title></head>
<body><p id="arrived">You have arrived.</p></body></html>`

const metaRedirectPageHTML = `<!DOCTYPE html>
<html><head><title>Redirecting</title>
<meta http-equiv="refresh" content="0;url=` + DestinationPage + `">
</head><body><p>Redirecting shortly.</p></body></html>`

const anchorsPageHTML = `<!DOCTYPE html>
<html><head><title>` + AnchorsPageTitle + `</title></head>
<body>
<p><a id="go-bottom" href="#section-bottom">jump to the bottom</a></p>
<div id="section-top">top section</div>
<div id="section-bottom">bottom section</div>
</body></html>`

const framesPageHTML = `<!DOCTYPE html>
<html><head><title>` + FramesPageTitle + `</title></head>
<frameset rows="30%,70%">
<frame name="` + HeaderFrameName + `" src="` + HeaderFramePage + `">
<frame name="` + ContentFrameName + `" src="` + ContentFramePage + `">
</frameset></html>`

const headerFramePageHTML = `<!DOCTYPE html>
<html><head><title>Header Frame</title></head>
<body><p id="frame-label">header</p></body></html>`

const contentFramePageHTML = `<!DOCTYPE html>
<html><head><title>Content Frame</title></head>
<body><p id="frame-label">content</p></body></html>`

const slowPageHTML = `<!DOCTYPE html>
<html><head><title>` + SlowPageTitle + `</title></head>
<body><p id="finished">Finally loaded.</p></body></html>`

func newPageHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(SimplePage, staticPage(simplePageHTML))
	mux.Handle(DestinationPage, staticPage(destinationPageHTML))
	mux.Handle(MetaRedirectPage, staticPage(metaRedirectPageHTML))
	mux.Handle(AnchorsPage, staticPage(anchorsPageHTML))
	mux.Handle(FramesPage, staticPage(framesPageHTML))
	mux.Handle(HeaderFramePage, staticPage(headerFramePageHTML))
	mux.Handle(ContentFramePage, staticPage(contentFramePageHTML))
	mux.HandleFunc(SlowPage, serveSlowPage)

	redirectHeaders := make(http.Header)
	redirectHeaders.Set("Location", DestinationPage)
	mux.Handle(RedirectPage, httphelpers.HandlerWithResponse(302, redirectHeaders, nil))

	mux.Handle(GonePage, httphelpers.HandlerWithStatus(410))

	return mux
}

func staticPage(html string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	})
}

// serveSlowPage delays before sending any of the response, so that a driver
// which returns from navigation too early will observe a page with no content.
// The delay is set with the "ms" query parameter.
func serveSlowPage(w http.ResponseWriter, r *http.Request) {
	delay := slowPageDefaultDelay
	if ms := r.URL.Query().Get("ms"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}
	if delay > slowPageMaxDelay {
		delay = slowPageMaxDelay
	}
	time.Sleep(delay)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(slowPageHTML))
}
