package pageloadtests

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// fakeDriver is an in-process stand-in for a real browser session, good
// enough to pass the page-loading suite: it fetches pages over HTTP, follows
// meta refreshes, keeps a history stack, and answers simple #id selector
// queries against the raw HTML. It lets the suite and fixture be exercised in
// go test without a browser or a WebDriver server.
type fakeDriver struct {
	client    *http.Client
	history   []string
	pos       int
	current   string
	title     string
	body      string
	caps      []string
	quitCount int
	closed    bool
}

var titleRx = regexp.MustCompile(`<title>([^<]*)</title>`)
var metaRefreshRx = regexp.MustCompile(`http-equiv="refresh"[^>]*content="\d+;url=([^"]+)"`)

func newFakeDriver(caps []string) *fakeDriver {
	return &fakeDriver{client: &http.Client{}, pos: -1, caps: caps}
}

func (d *fakeDriver) Get(target string) error {
	if d.closed {
		return errors.New("session is closed")
	}
	if base, _, found := strings.Cut(target, "#"); found && base == stripFragment(d.current) {
		// fragment-only navigation on the current page; no fetch happens
		d.current = target
		d.push(target)
		return nil
	}
	if err := d.fetch(target); err != nil {
		return err
	}
	d.push(d.current)
	return nil
}

func (d *fakeDriver) push(entry string) {
	d.history = append(d.history[:d.pos+1], entry)
	d.pos = len(d.history) - 1
}

func (d *fakeDriver) fetch(target string) error {
	resp, err := d.client.Get(stripFragment(target))
	if err != nil {
		return err
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}

	// redirects were followed by the client, so the final URL is authoritative
	d.current = resp.Request.URL.String()
	d.body = string(data)
	d.title = ""
	if m := titleRx.FindStringSubmatch(d.body); m != nil {
		d.title = m[1]
	}

	if m := metaRefreshRx.FindStringSubmatch(d.body); m != nil {
		next, err := d.resolve(m[1])
		if err != nil {
			return err
		}
		return d.fetch(next)
	}
	return nil
}

func (d *fakeDriver) resolve(ref string) (string, error) {
	base, err := url.Parse(d.current)
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

// load re-fetches a history entry without changing the stack.
func (d *fakeDriver) load(entry string) error {
	if err := d.fetch(entry); err != nil {
		return err
	}
	d.current = entry
	return nil
}

func (d *fakeDriver) Back() error {
	if d.pos <= 0 {
		return errors.New("no earlier history entry")
	}
	d.pos--
	return d.load(d.history[d.pos])
}

func (d *fakeDriver) Forward() error {
	if d.pos >= len(d.history)-1 {
		return errors.New("no later history entry")
	}
	d.pos++
	return d.load(d.history[d.pos])
}

func (d *fakeDriver) Refresh() error {
	if d.pos < 0 {
		return errors.New("no current page")
	}
	return d.load(d.history[d.pos])
}

func (d *fakeDriver) Title() (string, error) { return d.title, nil }

func (d *fakeDriver) CurrentURL() (string, error) { return d.current, nil }

func (d *fakeDriver) PageSource() (string, error) { return d.body, nil }

func (d *fakeDriver) ElementText(selector string) (string, error) {
	return elementTextIn(d.body, selector)
}

func (d *fakeDriver) FrameText(frameName, selector string) (string, error) {
	frameRx := regexp.MustCompile(`name="` + regexp.QuoteMeta(frameName) + `"\s+src="([^"]+)"`)
	m := frameRx.FindStringSubmatch(d.body)
	if m == nil {
		return "", fmt.Errorf("no frame named %q", frameName)
	}
	src, err := d.resolve(m[1])
	if err != nil {
		return "", err
	}
	resp, err := d.client.Get(src)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", err
	}
	return elementTextIn(string(data), selector)
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) Capabilities() []string { return d.caps }

func (d *fakeDriver) Quit() error {
	d.quitCount++
	d.closed = true
	return nil
}

func elementTextIn(body, selector string) (string, error) {
	if !strings.HasPrefix(selector, "#") {
		return "", fmt.Errorf("fake driver only understands #id selectors, got %q", selector)
	}
	idRx := regexp.MustCompile(`id="` + regexp.QuoteMeta(selector[1:]) + `"[^>]*>([^<]*)<`)
	m := idRx.FindStringSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no element matches selector %q", selector)
	}
	return m[1], nil
}

func stripFragment(u string) string {
	base, _, _ := strings.Cut(u, "#")
	return base
}
