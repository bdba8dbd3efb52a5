package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,password"`
		Username string `validate:"omitempty,username"`
		Phone    string `validate:"omitempty,phone"`
	}

	t.Run("valid", func(t *testing.T) {
		err := v.Validate(payload{
			Email:    "rider@example.com",
			Password: "secret1",
			Username: "commuter_01",
			Phone:    "+639171234567",
		})
		assert.NoError(t, err)
	})

	t.Run("password too short", func(t *testing.T) {
		err := v.Validate(payload{Email: "rider@example.com", Password: "12345"})
		require.Error(t, err)

		var fields V10ValidationError
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "password")
	})

	t.Run("username too short", func(t *testing.T) {
		err := v.Validate(payload{Email: "rider@example.com", Password: "secret1", Username: "short"})
		require.Error(t, err)

		var fields V10ValidationError
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "username")
	})

	t.Run("phone rejects letters", func(t *testing.T) {
		err := v.Validate(payload{Email: "rider@example.com", Password: "secret1", Phone: "09x7123"})
		require.Error(t, err)

		var fields V10ValidationError
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "phone")
	})

	t.Run("field names are snake_case", func(t *testing.T) {
		type snake struct {
			CurrentPassword string `validate:"required"`
		}

		err := v.Validate(snake{})
		require.Error(t, err)

		var fields V10ValidationError
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "current_password")
	})
}
