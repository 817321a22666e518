package room

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	token, err := s.Sign("meet-abc12345", "Ada", RoleParticipant)
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "meet-abc12345", claims.RoomID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, RoleParticipant, claims.Role)
}

func TestSigner_RejectsWrongSecret(t *testing.T) {
	token, err := NewSigner("one", time.Hour).Sign("meet-1", "Ada", RoleHost)
	require.NoError(t, err)

	_, err = NewSigner("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsExpired(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Sign("meet-1", "Ada", RoleHost)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RoomID: "meet-1", Name: "Mallory", Role: RoleHost}
	claims.Issuer = tokenIssuer
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
