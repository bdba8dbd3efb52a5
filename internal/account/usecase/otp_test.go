package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPSend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	out, err := f.uc.OTPSend(ctx, OTPSendInput{Email: "rider@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", out.Email)
	assert.Equal(t, 600, out.ExpiresIn)

	// The reissued code replaces the one registration stored.
	rec, err := f.repo.GetOTPByEmail(ctx, out.Email)
	require.NoError(t, err)
	assert.Equal(t, "222222", rec.Code)
}

func TestOTPSend_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OTPSend(context.Background(), OTPSendInput{Email: "nobody@example.com"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestOTPSend_Throttled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Registration burns the first send of the window.
	f.register(t, "rider@example.com", false)

	for range 2 {
		_, err := f.uc.OTPSend(ctx, OTPSendInput{Email: "rider@example.com"})
		require.NoError(t, err)
	}

	_, err := f.uc.OTPSend(ctx, OTPSendInput{Email: "rider@example.com"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeTooManyRequest, gerr.Code())
	assert.Positive(t, gerr.RetryAfter())
	assert.LessOrEqual(t, gerr.RetryAfter(), 60)

	// A different address is not affected.
	f.register(t, "other@example.com", false)
	_, err = f.uc.OTPSend(ctx, OTPSendInput{Email: "other@example.com"})
	require.NoError(t, err)

	// The window opens again once it elapses.
	f.clock.Advance(61 * time.Second)
	_, err = f.uc.OTPSend(ctx, OTPSendInput{Email: "rider@example.com"})
	require.NoError(t, err)
}

func TestOTPVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc := f.register(t, "rider@example.com", false)

	out, err := f.uc.OTPVerify(ctx, OTPVerifyInput{Email: "rider@example.com", Code: "111111"})
	require.NoError(t, err)
	assert.False(t, out.AlreadyVerified)
	assert.Empty(t, out.Token)
	require.NotNil(t, out.Account)
	assert.True(t, out.Account.IsVerified)
	require.NotNil(t, out.Account.EmailVerifiedAt)

	// The consumed code is gone.
	_, err = f.repo.GetOTPByEmail(ctx, acc.Email)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestOTPVerify_WrongCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	_, err := f.uc.OTPVerify(ctx, OTPVerifyInput{Email: "rider@example.com", Code: "999999"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	assert.Equal(t, "Invalid or expired OTP", gerr.Msg())
}

func TestOTPVerify_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	// A code is dead the instant its expiry is reached.
	f.clock.Advance(10 * time.Minute)

	_, err := f.uc.OTPVerify(ctx, OTPVerifyInput{Email: "rider@example.com", Code: "111111"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}

func TestOTPVerify_SupersededCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	_, err := f.uc.OTPSend(ctx, OTPSendInput{Email: "rider@example.com"})
	require.NoError(t, err)

	// The registration code was replaced by the reissue.
	_, err = f.uc.OTPVerify(ctx, OTPVerifyInput{Email: "rider@example.com", Code: "111111"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

	out, err := f.uc.OTPVerify(ctx, OTPVerifyInput{Email: "rider@example.com", Code: "222222"})
	require.NoError(t, err)
	assert.True(t, out.Account.IsVerified)
}

func TestOTPVerify_AlreadyVerified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc := f.register(t, "rider@example.com", true)

	// Leave a stray code around, then verify again.
	_, err := f.uc.OTPSend(ctx, OTPSendInput{Email: acc.Email})
	require.NoError(t, err)

	out, err := f.uc.OTPVerify(ctx, OTPVerifyInput{Email: acc.Email, Code: "000000"})
	require.NoError(t, err)
	assert.True(t, out.AlreadyVerified)
	assert.Empty(t, out.Token)

	// The stray code was cleaned up.
	_, err = f.repo.GetOTPByEmail(ctx, acc.Email)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestOTPVerify_LoginAfterVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "rider@example.com", false)

	out, err := f.uc.OTPVerify(ctx, OTPVerifyInput{
		Email:            "rider@example.com",
		Code:             "111111",
		LoginAfterVerify: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	// Verifying again is idempotent and still hands out a session.
	out, err = f.uc.OTPVerify(ctx, OTPVerifyInput{
		Email:            "rider@example.com",
		Code:             "111111",
		LoginAfterVerify: true,
	})
	require.NoError(t, err)
	assert.True(t, out.AlreadyVerified)
	assert.NotEmpty(t, out.Token)
}

func TestOTPVerify_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "nobody@example.com", Code: "111111"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}
