package pageloadtests

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/framework"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

// FixtureConfig configures the one-time setup for a test run.
type FixtureConfig struct {
	// Browser is the name passed to the driver connector, e.g. "ie".
	Browser string

	// Host and Port are where the fixture web server listens. Port 0 picks a
	// free port.
	Host string
	Port int

	ConnectOptions browser.ConnectOptions

	// Connect overrides how the driver handle is obtained. When nil, the
	// standard connector is used with Browser and ConnectOptions. Package
	// tests use this to substitute an in-process driver.
	Connect func() (browser.Driver, error)

	Logger framework.Logger
}

// Fixture holds the module-scoped handles shared by every test in a run.
type Fixture struct {
	Server *webserver.Server
	Driver browser.Driver

	logger    framework.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewFixture performs the one-time setup: it starts the web server and then
// opens the browser session. Any failure is fatal to the run; no test should
// execute after an error from here. If the driver fails after the server has
// started, the server is stopped before returning so that no listener leaks.
func NewFixture(cfg FixtureConfig) (*Fixture, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	server := webserver.New(host, cfg.Port, logger)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("fixture setup failed: %w", err)
	}

	connect := cfg.Connect
	if connect == nil {
		connect = func() (browser.Driver, error) {
			return browser.Connect(cfg.Browser, cfg.ConnectOptions)
		}
	}
	driver, err := connect()
	if err != nil {
		_ = server.Stop()
		return nil, fmt.Errorf("fixture setup failed: %w", err)
	}

	return &Fixture{Server: server, Driver: driver, logger: logger}, nil
}

// Close performs the one-time teardown: the browser session is quit first,
// then the web server is stopped. Both are attempted even if the first fails.
// Close is safe to call more than once; only the first call does anything, so
// both handles are released exactly once no matter how the run ended.
//
// Errors here are reported to the caller but should not affect test results
// that were already recorded.
func (f *Fixture) Close() error {
	f.closeOnce.Do(func() {
		var problems []string
		if err := f.Driver.Quit(); err != nil {
			f.logger.Printf("error quitting browser session: %s", err)
			problems = append(problems, fmt.Sprintf("quitting browser session: %s", err))
		}
		if err := f.Server.Stop(); err != nil {
			f.logger.Printf("error stopping fixture web server: %s", err)
			problems = append(problems, fmt.Sprintf("stopping fixture web server: %s", err))
		}
		if len(problems) > 0 {
			f.closeErr = errors.New("teardown: " + strings.Join(problems, "; "))
		}
	})
	return f.closeErr
}
