package webserver

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) *Server {
	s := New("localhost", 0, nil)
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func getPage(t *testing.T, url string) (*http.Response, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	return resp, string(body)
}

func TestServerAcceptsConnectionsAfterStart(t *testing.T) {
	s := startTestServer(t)

	resp, body := getPage(t, s.PageURL(SimplePage))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "<title>"+SimplePageTitle+"</title>")
	assert.Contains(t, body, `id="heading"`)
}

func TestServerRefusesConnectionsAfterStop(t *testing.T) {
	s := New("localhost", 0, nil)
	require.NoError(t, s.Start())
	url := s.PageURL(SimplePage)

	require.NoError(t, s.Stop())

	_, err := http.Get(url)
	assert.Error(t, err)
}

func TestStopIsIdempotent(t *testing.T) {
	s := New("localhost", 0, nil)
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestBindFailureIsReportedImmediately(t *testing.T) {
	s1 := New("localhost", 0, nil)
	require.NoError(t, s1.Start())
	t.Cleanup(func() { _ = s1.Stop() })

	s2 := New("localhost", s1.port, nil)
	err := s2.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not bind")
}

func TestRedirectPageSendsLocationHeader(t *testing.T) {
	s := startTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(s.PageURL(RedirectPage))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, DestinationPage, resp.Header.Get("Location"))
}

func TestMetaRedirectPagePointsAtDestination(t *testing.T) {
	s := startTestServer(t)

	resp, body := getPage(t, s.PageURL(MetaRedirectPage))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, DestinationPage)
}

func TestFramesPageReferencesNamedFrames(t *testing.T) {
	s := startTestServer(t)

	_, body := getPage(t, s.PageURL(FramesPage))
	assert.Contains(t, body, `name="`+HeaderFrameName+`"`)
	assert.Contains(t, body, `name="`+ContentFrameName+`"`)

	_, header := getPage(t, s.PageURL(HeaderFramePage))
	_, content := getPage(t, s.PageURL(ContentFramePage))
	assert.Contains(t, header, ">header<")
	assert.Contains(t, content, ">content<")
}

func TestSlowPageDelaysResponse(t *testing.T) {
	s := startTestServer(t)

	start := time.Now()
	resp, body := getPage(t, s.PageURL(SlowPage)+"?ms=300")
	elapsed := time.Since(start)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, `id="finished"`)
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
}

func TestUnknownPageReturns404(t *testing.T) {
	s := startTestServer(t)

	resp, _ := getPage(t, s.PageURL("/pages/no-such-page"))
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGonePageReturns410(t *testing.T) {
	s := startTestServer(t)

	resp, _ := getPage(t, s.PageURL(GonePage))
	assert.Equal(t, 410, resp.StatusCode)
}

func TestAwaitRequestSeesBrowserTraffic(t *testing.T) {
	s := startTestServer(t)
	s.DrainRequests()

	_, _ = getPage(t, s.PageURL(SimplePage))

	info, err := s.AwaitRequest(time.Second)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(info.Request.URL.Path, SimplePage))
}

func TestAwaitRequestTimesOutWhenNothingArrives(t *testing.T) {
	s := startTestServer(t)
	s.DrainRequests()

	_, err := s.AwaitRequest(50 * time.Millisecond)
	assert.Error(t, err)
}
