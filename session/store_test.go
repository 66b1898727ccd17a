package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStore(path)

	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())

	require.NoError(t, s.Save("tok-123", Profile{UserName: "Alice", Email: "alice@x.com"}))
	assert.Equal(t, "tok-123", s.Token())
	require.NotNil(t, s.Profile())
	assert.Equal(t, "Alice", s.Profile().UserName)

	// A second store on the same path observes the login.
	other := NewFileStore(path)
	assert.Equal(t, "tok-123", other.Token())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())

	// Clearing an already-cleared session is fine.
	require.NoError(t, s.Clear())
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save("tok", Profile{UserName: "A", Email: "a@x.com"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)
	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save("tok", Profile{UserName: "A", Email: "a@x.com"}))
	assert.Equal(t, "tok", s.Token())
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, TokenExpired(mintToken(t, time.Now().Add(-time.Hour))))
	assert.False(t, TokenExpired(mintToken(t, time.Now().Add(time.Hour))))

	// Unparsable or claim-less tokens are not reported expired; the
	// backend stays the authority.
	assert.False(t, TokenExpired(""))
	assert.False(t, TokenExpired("not-a-jwt"))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		&jwt.RegisteredClaims{Subject: "a@x.com"}).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(noExp))
}
