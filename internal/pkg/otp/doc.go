// Package otp generates the short-lived numeric passcodes sent over email.
//
// The passcode is stored server-side next to its expiry and compared against
// user input on verification. It is independent random material, not derived
// from a shared secret.
package otp
