package tokens

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
)

func testManager() *Manager {
	return NewManager(config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 720 * time.Hour,
		Issuer:     "api-gateway",
		Audience:   []string{"vocab-trainer"},
	})
}

func TestIssueAccess_VerifyRoundTrip(t *testing.T) {
	m := testManager()
	now := time.Now().UTC()

	signed, err := m.IssueAccess("user-1", now)
	require.NoError(t, err)

	claims, err := m.VerifyAccess(signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserLoginID)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "api-gateway", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, now.Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestIssue_FreshJTIPerCall(t *testing.T) {
	m := testManager()
	now := time.Now().UTC()

	first, err := m.IssueAccess("user-1", now)
	require.NoError(t, err)
	second, err := m.IssueAccess("user-1", now)
	require.NoError(t, err)

	c1, err := m.VerifyAccess(first)
	require.NoError(t, err)
	c2, err := m.VerifyAccess(second)
	require.NoError(t, err)

	// Два выпуска для одного пользователя никогда не делят jti.
	require.NotEqual(t, c1.ID, c2.ID)
}

func TestVerify_Expired(t *testing.T) {
	m := testManager()

	signed, err := m.IssueAccess("user-1", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, err = m.VerifyAccess(signed)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Tampered(t *testing.T) {
	m := testManager()

	signed, err := m.IssueRefresh("user-1", time.Now().UTC())
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] != 'A' {
		sig[0] = 'A'
	} else {
		sig[0] = 'B'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.VerifyRefresh(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.False(t, errors.Is(err, ErrTokenExpired))
}

func TestVerify_WrongSecret(t *testing.T) {
	m := testManager()
	other := NewManager(config.JWTConfig{
		Secret:     "other-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 720 * time.Hour,
		Issuer:     "api-gateway",
		Audience:   []string{"vocab-trainer"},
	})

	signed, err := other.IssueAccess("user-1", time.Now().UTC())
	require.NoError(t, err)

	_, err = m.VerifyAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	m := testManager()

	foreign := NewManager(config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 720 * time.Hour,
		Issuer:     "someone-else",
		Audience:   []string{"vocab-trainer"},
	})

	signed, err := foreign.IssueAccess("user-1", time.Now().UTC())
	require.NoError(t, err)

	_, err = m.VerifyAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := testManager()

	_, err := m.VerifyAccess("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefresh("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTTL(t *testing.T) {
	require.Equal(t, 720*time.Hour, testManager().RefreshTTL())
}
