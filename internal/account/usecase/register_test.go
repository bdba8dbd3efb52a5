package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Register(ctx, RegisterInput{
		Name:     "  Juan Dela Cruz  ",
		Email:    "Rider@Example.COM ",
		Password: "Secret123!",
		Phone:    "+639171234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", out.Email)

	acc, err := f.repo.GetAccountByEmail(ctx, "rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", acc.Name)
	assert.Equal(t, entity.RoleCommuter, acc.Role)
	assert.Equal(t, entity.DefaultLanguage, acc.Language)
	assert.False(t, acc.IsVerified)
	assert.NotEqual(t, "Secret123!", acc.PasswordHash)

	// Registration stores a pending code and publishes the delivery event.
	rec, err := f.repo.GetOTPByEmail(ctx, acc.Email)
	require.NoError(t, err)
	assert.Equal(t, "111111", rec.Code)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), rec.ExpiresAt)

	events := f.msg.published()
	require.Len(t, events, 1)
	assert.Equal(t, acc.ID, events[0].AccountID)
	assert.Equal(t, "111111", events[0].Code)
	assert.Equal(t, 600, events[0].ExpiresInSeconds)
	assert.Equal(t, event.PurposeVerification, events[0].Purpose)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	_, err := f.uc.Register(ctx, RegisterInput{
		Name:     "Someone Else",
		Email:    "rider@example.com",
		Password: "Another123!",
		Phone:    "+639170000000",
	})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	assert.Equal(t, "The email has already been taken.", gerr.Fields()["email"])
}

func TestRegister_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, RegisterInput{
		Name:     "Juan",
		Email:    "not-an-email",
		Password: "x",
		Phone:    "abc",
	})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

	// Nothing was created for a rejected registration.
	_, err = f.repo.GetAccountByEmail(ctx, "not-an-email")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestRegister_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.msg.err = assert.AnError

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Name:     "Juan Dela Cruz",
		Email:    "rider@example.com",
		Password: "Secret123!",
		Phone:    "+639171234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", out.Email)

	// The code is still stored even though delivery never went out.
	rec, err := f.repo.GetOTPByEmail(context.Background(), out.Email)
	require.NoError(t, err)
	assert.Equal(t, "111111", rec.Code)
}
