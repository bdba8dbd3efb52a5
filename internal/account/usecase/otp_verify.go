package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

type OTPVerifyInput struct {
	Email            string `validate:"required,email"`
	Code             string `validate:"required,len=6,number"`
	LoginAfterVerify bool
}

type OTPVerifyOutput struct {
	AlreadyVerified bool
	Account         *entity.Account
	Token           string
}

func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc.IsVerified {
		// Stray codes for an already verified account are cleaned up so they
		// can never be replayed.
		if err := s.repoDB.DeleteOTPByEmail(ctx, acc.Email); err != nil {
			slog.WarnContext(ctx, "failed to repo delete stray otp", "email", acc.Email, "error", err)
		}

		out := &OTPVerifyOutput{AlreadyVerified: true, Account: acc}
		if in.LoginAfterVerify {
			tok, err := s.tokens.Issue(ctx, acc.ID, "auth_token")
			if err != nil {
				slog.ErrorContext(ctx, "failed to issue token", "account_id", acc.ID, "error", err)
				return nil, goerror.NewServer(err)
			}
			out.Token = tok
		}

		return out, nil
	}

	rec, err := s.repoDB.GetOTPByEmail(ctx, acc.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp by email", "email", acc.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if rec.Code != in.Code || !rec.IsValid(s.clock.Now()) {
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeInvalidInput)
	}

	if err := s.repoDB.VerifyAccountEmail(ctx, acc.ID, acc.Email, s.clock.Now()); err != nil {
		slog.ErrorContext(ctx, "failed to repo verify account email", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	acc, err = s.repoDB.GetAccountByID(ctx, acc.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reload account", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &OTPVerifyOutput{Account: acc}
	if in.LoginAfterVerify {
		tok, err := s.tokens.Issue(ctx, acc.ID, "auth_token")
		if err != nil {
			slog.ErrorContext(ctx, "failed to issue token", "account_id", acc.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		out.Token = tok
	}

	return out, nil
}
