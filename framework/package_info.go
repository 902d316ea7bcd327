// Package framework contains the low-level test harness infrastructure that is
// independent of what is being tested.
//
// The general model is:
//
// 1. The harness owns external collaborators for the duration of a test run —
// here, a local web server providing navigation targets and a live browser
// session — which are started once before any test and released once after all
// tests, regardless of individual test outcomes.
//
// 2. There is a general notion of a test context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results, outside of the Go test
// runner.
//
// The domain-specific code that knows what is being tested is responsible for
// providing the fixture handles, the pages served as navigation targets, and a
// domain-specific test API on top of the test context.
package framework
