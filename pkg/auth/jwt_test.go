package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndParseToken(t *testing.T) {
	token, err := CreateToken("secret", "user-1", "pilgrim", "customer", time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "pilgrim", claims.Username)
	assert.Equal(t, "customer", claims.Type)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken("secret", "user-1", "pilgrim", "customer", time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := CreateToken("secret", "user-1", "pilgrim", "customer", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}
