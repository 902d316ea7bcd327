// Command webdriver-contract-tests runs the shared page-loading test suite
// against a real browser. It starts a local web server that provides the
// navigation targets, opens one browser session through the selected driver
// backend, runs every test against that shared session, and tears both down.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jlward/webdriver-contract-tests/framework"
	"github.com/jlward/webdriver-contract-tests/pageloadtests"
)

const defaultPort = 8321

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	fmt.Printf("Connecting to browser %q\n", params.browserName)
	fixture, err := pageloadtests.NewFixture(pageloadtests.FixtureConfig{
		Browser:        params.browserName,
		Host:           params.host,
		Port:           params.port,
		ConnectOptions: params.connectOptions(),
		Logger:         mainDebugLogger,
	})
	if err != nil {
		// Setup failures are fatal: no test runs.
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, pageloadtests.AllCapabilities,
		fixture.Driver.Capabilities())

	fmt.Printf("Running test suite against %s\n", fixture.Driver.Name())

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := pageloadtests.RunTestSuite(fixture, params.filters.AsFilter, testLogger)

	// Teardown happens exactly once no matter how the run went, and a
	// teardown failure never changes the test outcome.
	if err := fixture.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", params.rerunCommand(results.Failures))
		os.Exit(1)
	}
}
