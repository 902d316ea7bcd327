// Package webserver provides the local HTTP server whose pages are the
// navigation targets for the page-loading test suite.
package webserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/jlward/webdriver-contract-tests/framework"
)

const readinessTimeout = time.Second * 10
const shutdownTimeout = time.Second * 5

// Server serves the fixture pages on a local port. It is started once per test
// run and stopped once at the end; the suite shares a single instance.
type Server struct {
	host       string
	port       int
	httpServer *http.Server
	listener   net.Listener
	requests   <-chan httphelpers.HTTPRequestInfo
	logger     framework.Logger
	stopOnce   sync.Once
	stopErr    error
}

// New creates a Server that will listen on the given port. A port of 0 lets
// the OS pick a free one. The host is used only to construct the URLs that the
// browser navigates to.
func New(host string, port int, logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Server{host: host, port: port, logger: logger}
}

// Start binds the listener and begins serving pages. It does not return until
// the listener is verified to be accepting requests, so a successful return
// means navigation targets are live. A port that cannot be bound is an
// immediate error.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("fixture web server could not bind port %d: %w", s.port, err)
	}
	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port

	recorded, requests := httphelpers.RecordingHandler(newPageHandler())
	s.requests = requests
	s.httpServer = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "HEAD" {
				w.WriteHeader(200) // used to check whether the listener is active yet
				return
			}
			recorded.ServeHTTP(w, r)
		}),
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("fixture web server exited: %s", err)
		}
	}()

	probe := func() error {
		resp, err := http.DefaultClient.Head(s.BaseURL() + "/")
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("listener probe returned status %d", resp.StatusCode)
		}
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond * 10
	b.MaxElapsedTime = readinessTimeout
	if err := backoff.Retry(probe, b); err != nil {
		_ = listener.Close()
		return fmt.Errorf("could not detect own listener at %s: %w", s.BaseURL(), err)
	}

	s.logger.Printf("fixture web server listening at %s", s.BaseURL())
	return nil
}

// Stop shuts the server down and releases the listener. It is safe to call
// more than once; only the first call does anything.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		if s.httpServer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.stopErr = s.httpServer.Shutdown(ctx)
	})
	return s.stopErr
}

// BaseURL returns the externally visible root URL of the server.
func (s *Server) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", s.host, s.port)
}

// PageURL returns the full URL for one of the fixture pages, e.g.
// PageURL(SimplePage).
func (s *Server) PageURL(path string) string {
	return s.BaseURL() + path
}

// AwaitRequest returns the next request received by the server, so tests can
// verify which pages the browser actually fetched. HEAD probe requests are not
// recorded.
func (s *Server) AwaitRequest(timeout time.Duration) (httphelpers.HTTPRequestInfo, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case info := <-s.requests:
		return info, nil
	case <-deadline.C:
		return httphelpers.HTTPRequestInfo{}, fmt.Errorf("timed out waiting for a request to the fixture web server")
	}
}

// DrainRequests discards any recorded requests, so a test can start counting
// from a known point.
func (s *Server) DrainRequests() {
	for {
		select {
		case <-s.requests:
		default:
			return
		}
	}
}
