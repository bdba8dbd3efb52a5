package usecase

import (
	"context"
	"testing"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestProfile(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	got, err := f.uc.Profile(f.authCtx(acc))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "rider@example.com", got.Email)
}

func TestProfile_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Profile(context.Background())
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestProfileUpdate(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	got, err := f.uc.ProfileUpdate(f.authCtx(acc), ProfileUpdateInput{
		Name:     strPtr("  Maria Clara  "),
		Location: strPtr("Quezon City"),
		DarkMode: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Clara", got.Name)
	assert.Equal(t, "Quezon City", got.Location)
	assert.True(t, got.DarkMode)

	// Absent fields stay untouched.
	assert.Equal(t, acc.Phone, got.Phone)
	assert.Equal(t, acc.Language, got.Language)
}

func TestProfileUpdate_EmptyBody(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	got, err := f.uc.ProfileUpdate(f.authCtx(acc), ProfileUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, acc.Name, got.Name)
}

func TestProfileUpdate_InvalidPhone(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	_, err := f.uc.ProfileUpdate(f.authCtx(acc), ProfileUpdateInput{Phone: strPtr("not-a-phone")})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}

func TestUsernameUpdate(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	got, err := f.uc.UsernameUpdate(f.authCtx(acc), UsernameUpdateInput{Username: "juandelacruz"})
	require.NoError(t, err)
	require.NotNil(t, got.Username)
	assert.Equal(t, "juandelacruz", *got.Username)

	// Changing it again requires the current username.
	_, err = f.uc.UsernameUpdate(f.authCtx(acc), UsernameUpdateInput{Username: "mariaclara1"})
	gerr := asGoError(t, err)
	assert.Equal(t, "The current username does not match.", gerr.Fields()["current_username"])

	got, err = f.uc.UsernameUpdate(f.authCtx(acc), UsernameUpdateInput{
		Username:        "mariaclara1",
		CurrentUsername: "juandelacruz",
	})
	require.NoError(t, err)
	assert.Equal(t, "mariaclara1", *got.Username)
}

func TestUsernameUpdate_Taken(t *testing.T) {
	f := newFixture(t)

	first := f.register(t, "rider@example.com", true)
	second := f.register(t, "other@example.com", true)

	_, err := f.uc.UsernameUpdate(f.authCtx(first), UsernameUpdateInput{Username: "juandelacruz"})
	require.NoError(t, err)

	_, err = f.uc.UsernameUpdate(f.authCtx(second), UsernameUpdateInput{Username: "juandelacruz"})
	gerr := asGoError(t, err)
	assert.Equal(t, "The username has already been taken.", gerr.Fields()["username"])
}

func TestUsernameUpdate_TooShort(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	_, err := f.uc.UsernameUpdate(f.authCtx(acc), UsernameUpdateInput{Username: "short"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}

func TestPasswordUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc := f.register(t, "rider@example.com", true)

	err := f.uc.PasswordUpdate(f.authCtx(acc), PasswordUpdateInput{
		CurrentPassword: "Secret123!",
		NewPassword:     "NewSecret456!",
	})
	require.NoError(t, err)

	// The old password no longer works, the new one does.
	_, err = f.uc.Login(ctx, LoginInput{Email: acc.Email, Password: "Secret123!"})
	gerr := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())

	out, err := f.uc.Login(ctx, LoginInput{Email: acc.Email, Password: "NewSecret456!"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestPasswordUpdate_WrongCurrent(t *testing.T) {
	f := newFixture(t)

	acc := f.register(t, "rider@example.com", true)

	err := f.uc.PasswordUpdate(f.authCtx(acc), PasswordUpdateInput{
		CurrentPassword: "WrongPass1!",
		NewPassword:     "NewSecret456!",
	})
	gerr := asGoError(t, err)
	assert.Equal(t, "The current password is incorrect.", gerr.Fields()["current_password"])
}
