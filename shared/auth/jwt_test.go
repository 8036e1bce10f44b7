package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("charge-station-api", "charge-station-api")

	token, err := a.GenerateToken("user-123", "super-secret", time.Hour)
	require.NoError(t, err)

	claims, err := a.ParseToken(token, "super-secret")
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("charge-station-api", "charge-station-api")

	token, err := a.GenerateToken("u1", "secret", -1*time.Second)
	require.NoError(t, err)

	_, err = a.ParseToken(token, "secret")
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("charge-station-api", "charge-station-api")

	token, err := a.GenerateToken("u2", "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = a.ParseToken(token, "wrong-secret")
	require.Error(t, err)
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("charge-station-api", "charge-station-api")

	_, err := a.ParseToken("not.a.jwt", "k")
	require.Error(t, err)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuing := NewJWTAuthenticator("other-api", "other-api")
	verifying := NewJWTAuthenticator("charge-station-api", "charge-station-api")

	token, err := issuing.GenerateToken("u3", "secret", time.Hour)
	require.NoError(t, err)

	_, err = verifying.ParseToken(token, "secret")
	require.Error(t, err)
}
