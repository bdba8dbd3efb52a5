package inbound

import (
	"github.com/ligtascommute/backend/internal/account/usecase"
	"github.com/ligtascommute/backend/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, verification and
// profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new commuter account and triggers the first OTP send.
// @Summary Register account
// @Description Creates an unverified account and emails a verification OTP.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Account created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Email: resp.Email}, nil
}

// OTPSend issues a fresh OTP for an existing account.
// @Summary Send verification OTP
// @Description Generates and emails a six-digit OTP, replacing any pending code.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body OTPSendRequest true "OTP send payload"
// @Success 200 {object} router.successResponse{data=OTPSendResponse} "OTP issued"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /send-otp [post]
func (h *HTTPEndpoint) OTPSend(r *router.Request) (any, error) {
	var req OTPSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPSend(r.Context(), usecase.OTPSendInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return OTPSendResponse{Email: resp.Email, ExpiresIn: resp.ExpiresIn}, nil
}

// OTPVerify verifies a submitted OTP and marks the account verified.
// @Summary Verify OTP
// @Description Consumes the pending OTP and flips the account to verified. Optionally logs in.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body OTPVerifyRequest true "OTP verify payload"
// @Success 200 {object} router.successResponse{data=OTPVerifyResponse} "Verification result"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /verify-otp [post]
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Email:            req.Email,
		Code:             req.Code,
		LoginAfterVerify: req.LoginAfterVerify,
	})
	if err != nil {
		return nil, err
	}

	out := OTPVerifyResponse{
		Verified: true,
		Token:    resp.Token,
		User:     toUserResponse(resp.Account),
		message:  "Email verified successfully.",
	}
	if resp.AlreadyVerified {
		out.message = "Email already verified."
	}

	return out, nil
}

// Login authenticates a commuter with email and password.
// @Summary Login
// @Description Validates credentials. Unverified accounts get a verification prompt instead of a token.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if resp.RequiresVerification {
		return LoginResponse{
			RequiresVerification: true,
			message:              "Please verify your email address before logging in.",
		}, nil
	}

	return LoginResponse{
		Token:   resp.Token,
		User:    toUserResponse(resp.Account),
		message: "Login successful.",
	}, nil
}

// PasswordForgot triggers OTP issuance for a password reset.
// @Summary Forgot password
// @Description Sends an OTP when the email belongs to an account. Always answers 200.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 200 {object} router.successResponse "Request accepted"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /forgot-password [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return PasswordForgotResponse{}, nil
}

// Logout revokes the presented bearer token.
// @Summary Logout
// @Description Deletes the presented token. Logging out twice is not an error.
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Router /logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// Profile returns the authenticated account's public profile.
// @Summary Get profile
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Router /user [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	acc, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{UserResponse: *toUserResponse(acc)}, nil
}

// ProfileUpdate patches the authenticated account's profile fields.
// @Summary Update profile
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileUpdateRequest true "Profile patch payload"
// @Success 200 {object} router.successResponse{data=ProfileUpdateResponse} "Updated profile"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /user [patch]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
		Language: req.Language,
		DarkMode: req.DarkMode,
	})
	if err != nil {
		return nil, err
	}

	return ProfileUpdateResponse{UserResponse: *toUserResponse(acc)}, nil
}

// UsernameUpdate sets or changes the account username.
// @Summary Update username
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UsernameUpdateRequest true "Username payload"
// @Success 200 {object} router.successResponse{data=UsernameUpdateResponse} "Updated profile"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Failure 422 {object} router.errorResponse "Precondition or validation error"
// @Router /user/username [post]
func (h *HTTPEndpoint) UsernameUpdate(r *router.Request) (any, error) {
	var req UsernameUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.UsernameUpdate(r.Context(), usecase.UsernameUpdateInput{
		Username:        req.Username,
		CurrentUsername: req.CurrentUsername,
	})
	if err != nil {
		return nil, err
	}

	return UsernameUpdateResponse{UserResponse: *toUserResponse(acc)}, nil
}

// PasswordUpdate changes the account password.
// @Summary Update password
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PasswordUpdateRequest true "Password payload"
// @Success 200 {object} router.successResponse "Password updated"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Failure 422 {object} router.errorResponse "Precondition or validation error"
// @Router /user/password [post]
func (h *HTTPEndpoint) PasswordUpdate(r *router.Request) (any, error) {
	var req PasswordUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordUpdate(r.Context(), usecase.PasswordUpdateInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordUpdateResponse{}, nil
}
