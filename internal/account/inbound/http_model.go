package inbound

import (
	"net/http"
	"time"

	"github.com/ligtascommute/backend/internal/account/entity"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type RegisterResponse struct {
	Email string `json:"email"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "Registration successful. Please check your email for the OTP verification code."
}

type OTPSendRequest struct {
	Email string `json:"email"`
}

type OTPSendResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"`
}

func (OTPSendResponse) Message() string {
	return "OTP sent successfully."
}

type OTPVerifyRequest struct {
	Email            string `json:"email"`
	Code             string `json:"code"`
	LoginAfterVerify bool   `json:"login_after_verify"`
}

type OTPVerifyResponse struct {
	Verified bool          `json:"verified"`
	Token    string        `json:"token,omitempty"`
	User     *UserResponse `json:"user,omitempty"`

	message string
}

func (r OTPVerifyResponse) Message() string {
	return r.message
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	RequiresVerification bool          `json:"requires_verification,omitempty"`
	Token                string        `json:"token,omitempty"`
	User                 *UserResponse `json:"user,omitempty"`

	message string
}

func (r LoginResponse) Message() string {
	return r.message
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent an OTP code."
}

type LogoutResponse struct{}

func (LogoutResponse) StatusCode() int {
	return http.StatusOK
}

func (LogoutResponse) Message() string {
	return "Logged out successfully."
}

type ProfileResponse struct {
	UserResponse
}

func (ProfileResponse) Message() string {
	return "Profile retrieved successfully."
}

type ProfileUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Language *string `json:"language,omitempty"`
	DarkMode *bool   `json:"dark_mode,omitempty"`
}

type ProfileUpdateResponse struct {
	UserResponse
}

func (ProfileUpdateResponse) Message() string {
	return "Profile updated successfully."
}

type UsernameUpdateRequest struct {
	Username        string `json:"username"`
	CurrentUsername string `json:"current_username,omitempty"`
}

type UsernameUpdateResponse struct {
	UserResponse
}

func (UsernameUpdateResponse) Message() string {
	return "Username updated successfully."
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PasswordUpdateResponse struct{}

func (PasswordUpdateResponse) Message() string {
	return "Password updated successfully."
}

// UserResponse is the public profile shape. The password hash never leaves
// the service.
type UserResponse struct {
	ID              int64      `json:"id,string"`
	Email           string     `json:"email"`
	Username        *string    `json:"username"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Location        string     `json:"location"`
	Role            string     `json:"role"`
	IsVerified      bool       `json:"is_verified"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Points          int32      `json:"points"`
	Language        string     `json:"language"`
	DarkMode        bool       `json:"dark_mode"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toUserResponse(acc *entity.Account) *UserResponse {
	if acc == nil {
		return nil
	}

	return &UserResponse{
		ID:              acc.ID,
		Email:           acc.Email,
		Username:        acc.Username,
		Name:            acc.Name,
		Phone:           acc.Phone,
		Location:        acc.Location,
		Role:            acc.Role,
		IsVerified:      acc.IsVerified,
		EmailVerifiedAt: acc.EmailVerifiedAt,
		Points:          acc.Points,
		Language:        acc.Language,
		DarkMode:        acc.DarkMode,
		CreatedAt:       acc.CreatedAt,
	}
}
