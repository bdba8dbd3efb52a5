package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

type ProfileUpdateInput struct {
	Name     *string `validate:"omitempty,min=1,max=255"`
	Phone    *string `validate:"omitempty,phone"`
	Location *string `validate:"omitempty,max=255"`
	Language *string `validate:"omitempty,min=2,max=10"`
	DarkMode *bool
}

func (in ProfileUpdateInput) isEmpty() bool {
	return in.Name == nil && in.Phone == nil && in.Location == nil &&
		in.Language == nil && in.DarkMode == nil
}

// ProfileUpdate applies the provided fields to the authenticated account and
// returns the updated state. Absent fields are left untouched.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !in.isEmpty() {
		changes := entity.ProfileChanges{
			Name:     in.Name,
			Phone:    in.Phone,
			Location: in.Location,
			Language: in.Language,
			DarkMode: in.DarkMode,
		}
		if err := s.repoDB.UpdateProfile(ctx, auth.AccountID, changes); err != nil {
			slog.ErrorContext(ctx, "failed to repo update profile", "account_id", auth.AccountID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	acc, err := s.repoDB.GetAccountByID(ctx, auth.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reload account", "account_id", auth.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return acc, nil
}
