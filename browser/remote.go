package browser

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tebeka/selenium"

	"github.com/jlward/webdriver-contract-tests/framework"
)

// Browser identifiers accepted by Connect for the remote backend, mapped to
// the browserName capability the WebDriver protocol expects.
var remoteBrowserNames = map[string]string{
	"ie":                "internet explorer",
	"internet explorer": "internet explorer",
	"firefox":           "firefox",
	"chrome":            "chrome",
	"edge":              "MicrosoftEdge",
	"safari":            "safari",
	"htmlunit":          "htmlunit",
}

type remoteDriver struct {
	wd       selenium.WebDriver
	name     string
	quitOnce sync.Once
	quitErr  error
}

func connectRemote(browserName string, opts ConnectOptions) (Driver, error) {
	if err := awaitWebDriverServer(opts.RemoteURL, opts.ConnectTimeout, opts.Logger); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{"browserName": browserName}
	wd, err := selenium.NewRemote(caps, opts.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("could not open a %s session at %s: %w", browserName, opts.RemoteURL, err)
	}

	if opts.PageLoadTimeoutMS.IsDefined() {
		timeout := time.Duration(opts.PageLoadTimeoutMS.IntValue()) * time.Millisecond
		if err := wd.SetPageLoadTimeout(timeout); err != nil {
			_ = wd.Quit()
			return nil, fmt.Errorf("could not set page load timeout: %w", err)
		}
	}

	opts.Logger.Printf("connected to %s via %s", browserName, opts.RemoteURL)
	return &remoteDriver{wd: wd, name: browserName}, nil
}

// awaitWebDriverServer polls the server's status resource until it answers,
// since driver servers are often started as a sibling process moments before
// the harness runs.
func awaitWebDriverServer(remoteURL string, timeout time.Duration, logger framework.Logger) error {
	if logger == nil {
		logger = framework.NullLogger()
	}
	probe := func() error {
		resp, err := http.DefaultClient.Get(remoteURL + "/status")
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("status query returned %d", resp.StatusCode)
		}
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond * 100
	b.MaxElapsedTime = timeout
	if err := backoff.Retry(probe, b); err != nil {
		return fmt.Errorf("WebDriver server at %s did not respond: %w", remoteURL, err)
	}
	logger.Printf("WebDriver server at %s is up", remoteURL)
	return nil
}

func (d *remoteDriver) Get(url string) error { return d.wd.Get(url) }

func (d *remoteDriver) Title() (string, error) { return d.wd.Title() }

func (d *remoteDriver) CurrentURL() (string, error) { return d.wd.CurrentURL() }

func (d *remoteDriver) Back() error { return d.wd.Back() }

func (d *remoteDriver) Forward() error { return d.wd.Forward() }

func (d *remoteDriver) Refresh() error { return d.wd.Refresh() }

func (d *remoteDriver) PageSource() (string, error) { return d.wd.PageSource() }

func (d *remoteDriver) ElementText(selector string) (string, error) {
	el, err := d.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (d *remoteDriver) FrameText(frameName, selector string) (string, error) {
	if err := d.wd.SwitchFrame(frameName); err != nil {
		return "", fmt.Errorf("could not switch to frame %q: %w", frameName, err)
	}
	// switch back to the top document no matter what
	defer func() { _ = d.wd.SwitchFrame(nil) }()

	el, err := d.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (d *remoteDriver) Name() string { return d.name }

func (d *remoteDriver) Capabilities() []string { return allCapabilities() }

func (d *remoteDriver) Quit() error {
	d.quitOnce.Do(func() {
		d.quitErr = d.wd.Quit()
	})
	return d.quitErr
}
