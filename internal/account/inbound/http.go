package inbound

import (
	"context"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/account/usecase"
	"github.com/ligtascommute/backend/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) error

	OTPSend(ctx context.Context, in usecase.OTPSendInput) (*usecase.OTPSendOutput, error)
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) (*usecase.OTPVerifyOutput, error)
	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error

	Profile(ctx context.Context) (*entity.Account, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*entity.Account, error)
	UsernameUpdate(ctx context.Context, in usecase.UsernameUpdateInput) (*entity.Account, error)
	PasswordUpdate(ctx context.Context, in usecase.PasswordUpdateInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Registration & Authentication
	r.POST("/register", end.Register)
	r.POST("/login", end.Login)
	r.POST("/logout", end.Logout) // need authenticated

	// Email Verification
	r.POST("/send-otp", end.OTPSend)
	r.POST("/verify-otp", end.OTPVerify)
	r.POST("/forgot-password", end.PasswordForgot)

	// Profile (need authenticated)
	r.GET("/user", end.Profile)
	r.PATCH("/user", end.ProfileUpdate)
	r.POST("/user/username", end.UsernameUpdate)
	r.POST("/user/password", end.PasswordUpdate)
}
