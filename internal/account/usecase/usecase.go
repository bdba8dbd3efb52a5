package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/clock"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/pkg/hash"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/otp"
	"github.com/ligtascommute/backend/internal/pkg/ratelimit"
	"github.com/ligtascommute/backend/internal/pkg/token"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/pkg/validator"
	"github.com/ligtascommute/backend/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	CreateAccount(ctx context.Context, acc entity.Account) error

	GetOTPByEmail(ctx context.Context, email string) (*entity.OTPCode, error)
	UpsertOTP(ctx context.Context, code entity.OTPCode) error
	DeleteOTPByEmail(ctx context.Context, email string) error

	// VerifyAccountEmail flips the verified flag and deletes the pending OTP
	// row in one transaction.
	VerifyAccountEmail(ctx context.Context, accountID int64, email string, verifiedAt time.Time) error

	UpdateProfile(ctx context.Context, id int64, changes entity.ProfileChanges) error
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type repoMessaging interface {
	PublishOTPRequested(ctx context.Context, msg event.OTPRequested) error
}

type tokens interface {
	Issue(ctx context.Context, accountID int64, name string) (string, error)
	Revoke(ctx context.Context, plaintext string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	passwords     hash.Hash
	limiter       ratelimit.Limiter
	tokens        tokens
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Passwords     hash.Hash
	Limiter       ratelimit.Limiter
	Tokens        tokens
	OTP           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		passwords:     dep.Passwords,
		limiter:       dep.Limiter,
		tokens:        dep.Tokens,
		otp:           dep.OTP,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*token.Auth, error) {
	auth := token.GetAuth(ctx)
	if auth == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return auth, nil
}

// issueOTP runs the issuance flow for an existing account: throttle check,
// code generation, upsert, best-effort delivery event. It returns the code
// lifetime in seconds.
func (s *Usecase) issueOTP(ctx context.Context, acc *entity.Account, purpose string) (int, error) {
	key := "send-otp:" + acc.Email
	window := s.cfg.GetSecond("modules.account.otp_send_window_seconds")
	limit := s.cfg.GetInt64("modules.account.otp_send_limit")

	count, err := s.limiter.Hit(ctx, key, window)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hit rate limit window", "email", acc.Email, "error", err)
		return 0, goerror.NewServer(err)
	}

	if count > limit {
		wait, err := s.limiter.AvailableIn(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read rate limit window ttl", "email", acc.Email, "error", err)
			wait = window
		}

		secs := int((wait + time.Second - 1) / time.Second)
		if secs < 1 {
			secs = 1
		}

		return 0, goerror.NewThrottled("Too many OTP requests. Please try again later.", secs)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return 0, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.account.otp_ttl_minutes")
	if err := s.repoDB.UpsertOTP(ctx, entity.OTPCode{
		Email:     acc.Email,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(ttl),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp", "email", acc.Email, "error", err)
		return 0, goerror.NewServer(err)
	}

	// The code is durably stored, so delivery failure does not fail issuance.
	if err := s.repoMessaging.PublishOTPRequested(ctx, event.OTPRequested{
		AccountID:        acc.ID,
		Email:            acc.Email,
		Name:             acc.Name,
		Code:             code,
		ExpiresInSeconds: int(ttl.Seconds()),
		Purpose:          purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp requested", "email", acc.Email, "error", err)
	}

	return int(ttl.Seconds()), nil
}
