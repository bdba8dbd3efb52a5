package entity

import "time"

// Account roles.
const (
	RoleCommuter = "commuter"
	RoleAdmin    = "admin"
)

// DefaultLanguage is applied to new accounts.
const DefaultLanguage = "en"

// Account is a registered user of the commuting app.
type Account struct {
	ID              int64
	Email           string
	Username        *string
	Name            string
	Phone           string
	Location        string
	Role            string
	PasswordHash    string
	IsVerified      bool
	EmailVerifiedAt *time.Time
	Points          int32
	Language        string
	DarkMode        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProfileChanges carries the optional fields of a profile update. Nil fields
// are left untouched.
type ProfileChanges struct {
	Name     *string
	Phone    *string
	Location *string
	Language *string
	DarkMode *bool
}
