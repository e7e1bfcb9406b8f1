package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "sales", "leads-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "sales", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "admin", "leads-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "admin", "leads-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "admin", "x", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, _, err = jwt.Parse("", "token")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
