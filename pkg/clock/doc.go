// Package clock provides a tiny time abstraction.
//
// Time-based one-time passwords depend on the wall clock. Code that needs the
// current time should depend on the Clocker interface so tests can pin it to
// a fixed instant.
package clock
