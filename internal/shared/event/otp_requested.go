// Package event defines the message contracts exchanged between modules
// through the message broker.
package event

// Topic names used on the broker.
const (
	// TopicOTPRequested carries OTPRequested events from the account module to
	// the notification module.
	TopicOTPRequested = "account.otp.requested"
)

// OTP purposes. The notification module uses the purpose to choose wording.
const (
	PurposeVerification  = "verification"
	PurposePasswordReset = "password_reset"
)

// OTPRequested is published whenever a one-time password has been issued and
// needs to be delivered to the account owner.
type OTPRequested struct {
	AccountID        int64  `json:"account_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
	Purpose          string `json:"purpose"`
}
