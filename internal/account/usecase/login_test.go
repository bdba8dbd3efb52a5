package usecase

import (
	"context"
	"testing"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc := f.register(t, "rider@example.com", true)

	out, err := f.uc.Login(ctx, LoginInput{Email: "Rider@Example.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.False(t, out.RequiresVerification)
	assert.NotEmpty(t, out.Token)
	require.NotNil(t, out.Account)
	assert.Equal(t, acc.ID, out.Account.ID)
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	// Correct credentials on an unverified account never yield a session.
	out, err := f.uc.Login(ctx, LoginInput{Email: "rider@example.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.True(t, out.RequiresVerification)
	assert.Empty(t, out.Token)
	assert.Nil(t, out.Account)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", true)

	// Unknown email and wrong password are indistinguishable.
	_, err := f.uc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "Secret123!"})
	unknownErr := asGoError(t, err)

	_, err = f.uc.Login(ctx, LoginInput{Email: "rider@example.com", Password: "WrongPass1!"})
	mismatchErr := asGoError(t, err)

	assert.Equal(t, goerror.CodeUnauthorized, unknownErr.Code())
	assert.Equal(t, goerror.CodeUnauthorized, mismatchErr.Code())
	assert.Equal(t, unknownErr.Msg(), mismatchErr.Msg())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	require.NoError(t, f.uc.Logout(f.authCtx(acc)))
	assert.Equal(t, []string{"bearer-plaintext"}, f.tokens.revoked)

	// Logging out again still succeeds.
	require.NoError(t, f.uc.Logout(f.authCtx(acc)))
}

func TestLogout_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Logout(context.Background())
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestPasswordForgot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", true)

	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "rider@example.com"}))

	events := f.msg.published()
	require.Len(t, events, 2)
	assert.Equal(t, "password_reset", events[1].Purpose)
}

func TestPasswordForgot_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	// The response never reveals whether the email exists.
	require.NoError(t, f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"}))
	assert.Empty(t, f.msg.published())
}

func TestPasswordForgot_ThrottleIsSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", true)

	for range 4 {
		require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "rider@example.com"}))
	}
}

func TestPasswordForgot_InvalidEmail(t *testing.T) {
	f := newFixture(t)

	err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "not-an-email"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}
