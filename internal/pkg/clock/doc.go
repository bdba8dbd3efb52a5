// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly. Passcode expiry and throttle windows are time-driven,
// so tests swap in a fake clock that returns a deterministic time.
package clock
