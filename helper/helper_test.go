package helper_test

import (
	"testing"
	"time"

	"fiber/wof/config"
	"fiber/wof/helper"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	config.Env.JWTSecret = "test-secret"

	token, err := helper.GenerateToken(" Student@MUJ.manipal.edu ", time.Hour)
	require.NoError(t, err)

	claims, err := helper.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student@muj.manipal.edu", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
}

func TestToken_Expired(t *testing.T) {
	config.Env.JWTSecret = "test-secret"

	token, err := helper.GenerateToken("a@gmail.com", -time.Minute)
	require.NoError(t, err)

	_, err = helper.ValidateToken(token)
	assert.NoError(t, err, "a non-positive ttl issues a token without expiry")

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@gmail.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	expired, err := claims.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = helper.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestToken_WrongSecret(t *testing.T) {
	config.Env.JWTSecret = "one"
	token, err := helper.GenerateToken("a@gmail.com", time.Hour)
	require.NoError(t, err)

	config.Env.JWTSecret = "two"
	_, err = helper.ValidateToken(token)
	assert.Error(t, err)
}

func TestSplitEmail(t *testing.T) {
	user, domain, ok := helper.SplitEmail("Ritwik.Roy@Gmail.com")
	require.True(t, ok)
	assert.Equal(t, "ritwik.roy", user)
	assert.Equal(t, "gmail.com", domain)

	_, _, ok = helper.SplitEmail("no-at-sign")
	assert.False(t, ok)
	_, _, ok = helper.SplitEmail("@gmail.com")
	assert.False(t, ok)
}

func TestOTP(t *testing.T) {
	code, err := helper.GenerateOTP()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Regexp(t, `^[0-9]{6}$`, code)

	hash, err := helper.HashOTP(code)
	require.NoError(t, err)
	assert.True(t, helper.CheckOTPHash(code, hash))
	assert.False(t, helper.CheckOTPHash("000000x", hash))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, helper.ValidateVar("9876543210", "mobile"))
	assert.Error(t, helper.ValidateVar("98765", "mobile"))
	assert.NoError(t, helper.ValidateVar("2024-02-29", "isodate"))
	assert.Error(t, helper.ValidateVar("2023-02-29", "isodate"))

	type req struct {
		Email string `validate:"required,email"`
	}
	err := helper.ValidateStruct(req{})
	require.Error(t, err)
	assert.Equal(t, "missing required field: Email", helper.FormatValidationErrors(err))
}

func TestFormatValidationErrors_MinMax(t *testing.T) {
	type req struct {
		Remarks string   `validate:"min=3"`
		Tags    []string `validate:"max=1"`
		Order   int      `validate:"min=1"`
	}
	err := helper.ValidateStruct(req{Remarks: "ok", Tags: []string{"a", "b"}})
	require.Error(t, err)
	assert.Equal(t,
		"Remarks must be at least 3 characters long; Tags must be at most 1 items; Order must be at least 1",
		helper.FormatValidationErrors(err))
}
