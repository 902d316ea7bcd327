package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/framework"
)

type commandParams struct {
	browserName       string
	remoteURL         string
	host              string
	port              int
	filters           framework.RegexFilters
	headless          bool
	connectTimeout    time.Duration
	pageLoadTimeoutMS int
	debug             bool
	debugAll          bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.browserName, "browser", "ie", "name of the browser to test")
	fs.StringVar(&c.remoteURL, "remote", browser.DefaultRemoteURL, "WebDriver server URL for remote browsers")
	fs.StringVar(&c.host, "host", "localhost", "hostname the browser uses to reach the fixture web server")
	fs.IntVar(&c.port, "port", defaultPort, "port that the fixture web server will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.headless, "headless", false, "run locally launched browsers headless")
	fs.DurationVar(&c.connectTimeout, "connect-timeout", 0, "how long to wait for the WebDriver server")
	fs.IntVar(&c.pageLoadTimeoutMS, "page-load-timeout-ms", 0, "page load timeout in milliseconds (0 = driver default)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.browserName == "" {
		fmt.Fprintln(os.Stderr, "-browser must not be empty")
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) connectOptions() browser.ConnectOptions {
	opts := browser.ConnectOptions{
		RemoteURL:      c.remoteURL,
		ConnectTimeout: c.connectTimeout,
		Headless:       c.headless,
	}
	if c.pageLoadTimeoutMS > 0 {
		opts.PageLoadTimeoutMS = ldvalue.NewOptionalInt(c.pageLoadTimeoutMS)
	}
	return opts
}

// rerunCommand builds a copy-pasteable command line that reruns exactly the
// failed tests.
func (c *commandParams) rerunCommand(failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0])
	b.add("-browser", c.browserName)
	if c.remoteURL != browser.DefaultRemoteURL {
		b.add("-remote", c.remoteURL)
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
