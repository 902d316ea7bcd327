package pageloadtests

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlward/webdriver-contract-tests/browser"
	"github.com/jlward/webdriver-contract-tests/webserver"
)

func fakeConnect(d *fakeDriver) func() (browser.Driver, error) {
	return func() (browser.Driver, error) { return d, nil }
}

func pickUnusedPort(t *testing.T) int {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestSetupProvidesLiveServerAndDriver(t *testing.T) {
	driver := newFakeDriver(AllCapabilities)
	fixture, err := NewFixture(FixtureConfig{Connect: fakeConnect(driver)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = fixture.Close() })

	resp, err := http.Get(fixture.Server.PageURL(webserver.SimplePage))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	require.NoError(t, fixture.Driver.Get(fixture.Server.PageURL(webserver.SimplePage)))
	title, err := fixture.Driver.Title()
	require.NoError(t, err)
	assert.Equal(t, webserver.SimplePageTitle, title)
}

func TestSetupFailureFromDriverStopsTheServer(t *testing.T) {
	port := pickUnusedPort(t)
	connectErr := errors.New("browser is unavailable")

	_, err := NewFixture(FixtureConfig{
		Port:    port,
		Connect: func() (browser.Driver, error) { return nil, connectErr },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, connectErr)

	// the server that was started before the driver failed must not leak
	_, err = http.Get(fmt.Sprintf("http://localhost:%d%s", port, webserver.SimplePage))
	assert.Error(t, err)
}

func TestSetupFailureFromServerNeverConnectsDriver(t *testing.T) {
	port := pickUnusedPort(t)
	blocker := newFakeDriver(AllCapabilities)
	first, err := NewFixture(FixtureConfig{Port: port, Connect: fakeConnect(blocker)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	connectCalls := 0
	_, err = NewFixture(FixtureConfig{
		Port: port, // already taken
		Connect: func() (browser.Driver, error) {
			connectCalls++
			return newFakeDriver(AllCapabilities), nil
		},
	})
	require.Error(t, err)
	assert.Equal(t, 0, connectCalls, "driver should not be connected when the server cannot start")
}

func TestTeardownReleasesDriverBeforeServer(t *testing.T) {
	driver := newFakeDriver(AllCapabilities)
	fixture, err := NewFixture(FixtureConfig{Connect: fakeConnect(driver)})
	require.NoError(t, err)
	serverURL := fixture.Server.PageURL(webserver.SimplePage)

	require.NoError(t, fixture.Close())

	assert.Equal(t, 1, driver.quitCount)
	_, err = http.Get(serverURL)
	assert.Error(t, err, "server should no longer accept connections after teardown")
}

func TestTeardownRunsExactlyOnce(t *testing.T) {
	driver := newFakeDriver(AllCapabilities)
	fixture, err := NewFixture(FixtureConfig{Connect: fakeConnect(driver)})
	require.NoError(t, err)

	require.NoError(t, fixture.Close())
	require.NoError(t, fixture.Close())
	require.NoError(t, fixture.Close())

	assert.Equal(t, 1, driver.quitCount)
}

func TestTeardownStopsServerEvenIfDriverQuitFails(t *testing.T) {
	driver := &failingQuitDriver{fakeDriver: newFakeDriver(AllCapabilities)}
	fixture, err := NewFixture(FixtureConfig{
		Connect: func() (browser.Driver, error) { return driver, nil },
	})
	require.NoError(t, err)
	serverURL := fixture.Server.PageURL(webserver.SimplePage)

	err = fixture.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quitting browser session")

	_, err = http.Get(serverURL)
	assert.Error(t, err, "server should be stopped even though the driver quit failed")
}

type failingQuitDriver struct {
	*fakeDriver
}

func (d *failingQuitDriver) Quit() error {
	_ = d.fakeDriver.Quit()
	return errors.New("browser crashed on quit")
}
