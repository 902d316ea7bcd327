package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Browser identifiers accepted by Connect for the locally launched backend.
var playwrightBrowserNames = map[string]string{
	"chromium":           "chromium",
	"webkit":             "webkit",
	"playwright-firefox": "firefox",
}

type playwrightDriver struct {
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	name     string
	gotoOpts playwright.PageGotoOptions
	quitOnce sync.Once
	quitErr  error
}

func connectPlaywright(browserName string, opts ConnectOptions) (Driver, error) {
	// Discard installer output so it does not interleave with test progress.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch browserName {
	case "chromium":
		browserType = pw.Chromium
	case "webkit":
		browserType = pw.WebKit
	case "firefox":
		browserType = pw.Firefox
	}

	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", browserName, err)
	}

	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open a page in %s: %w", browserName, err)
	}

	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}
	if opts.PageLoadTimeoutMS.IsDefined() {
		gotoOpts.Timeout = playwright.Float(float64(opts.PageLoadTimeoutMS.IntValue()))
	}

	opts.Logger.Printf("launched %s via playwright", browserName)
	return &playwrightDriver{
		pw:       pw,
		browser:  b,
		page:     page,
		name:     browserName,
		gotoOpts: gotoOpts,
	}, nil
}

func (d *playwrightDriver) Get(url string) error {
	_, err := d.page.Goto(url, d.gotoOpts)
	return err
}

func (d *playwrightDriver) Title() (string, error) { return d.page.Title() }

func (d *playwrightDriver) CurrentURL() (string, error) { return d.page.URL(), nil }

func (d *playwrightDriver) Back() error {
	_, err := d.page.GoBack()
	return err
}

func (d *playwrightDriver) Forward() error {
	_, err := d.page.GoForward()
	return err
}

func (d *playwrightDriver) Refresh() error {
	_, err := d.page.Reload()
	return err
}

func (d *playwrightDriver) PageSource() (string, error) { return d.page.Content() }

func (d *playwrightDriver) ElementText(selector string) (string, error) {
	el, err := d.page.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	if el == nil {
		return "", fmt.Errorf("no element matches selector %q", selector)
	}
	return el.TextContent()
}

func (d *playwrightDriver) FrameText(frameName, selector string) (string, error) {
	for _, f := range d.page.Frames() {
		if f.Name() != frameName {
			continue
		}
		el, err := f.QuerySelector(selector)
		if err != nil {
			return "", err
		}
		if el == nil {
			return "", fmt.Errorf("no element matches selector %q in frame %q", selector, frameName)
		}
		return el.TextContent()
	}
	return "", fmt.Errorf("no frame named %q", frameName)
}

func (d *playwrightDriver) Name() string { return d.name }

func (d *playwrightDriver) Capabilities() []string { return allCapabilities() }

func (d *playwrightDriver) Quit() error {
	d.quitOnce.Do(func() {
		if err := d.page.Close(); err != nil {
			d.quitErr = err
		}
		if err := d.browser.Close(); err != nil && d.quitErr == nil {
			d.quitErr = err
		}
		if err := d.pw.Stop(); err != nil && d.quitErr == nil {
			d.quitErr = err
		}
	})
	return d.quitErr
}
