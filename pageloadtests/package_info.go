// Package pageloadtests contains the shared page-loading test suite and the
// fixture it runs against.
//
// The fixture owns the two handles that live for the whole run: the local web
// server that provides navigation targets, and the browser driver session.
// Every test case in the suite uses the same pair; nothing is re-initialized
// between tests. The suite itself is a plain function over the fixture, so any
// browser a connector can reach runs the identical set of behaviors.
package pageloadtests
