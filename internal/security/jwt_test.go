package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("secret")

	token, err := tm.Generate("user_1", time.Minute)
	require.NoError(t, err)

	userID, err := tm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", userID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Generate("user_1", time.Minute)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret")

	token, err := tm.Generate("user_1", -time.Minute)
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret").ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
