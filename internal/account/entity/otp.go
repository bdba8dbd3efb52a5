package entity

import "time"

// OTPCode is the single pending one-time passcode for an email. Issuing a new
// code replaces the previous row, so at most one code is live per email.
type OTPCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// IsValid reports whether the code is still usable at the given instant. A
// code at exactly its expiry instant is already expired.
func (o OTPCode) IsValid(now time.Time) bool {
	return now.Before(o.ExpiresAt)
}
