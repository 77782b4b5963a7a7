package encryption

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	saltPath := filepath.Join(t.TempDir(), "salt")
	enc, err := NewEncryptor("correct horse", saltPath)
	require.NoError(t, err)

	sealed, err := enc.Encrypt(`[{"id":"1","title":"Day One"}]`)
	require.NoError(t, err)
	assert.True(t, IsEncrypted(sealed))
	assert.NotContains(t, sealed, "Day One")

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1","title":"Day One"}]`, plain)
}

func TestNewEncryptor_ReusesSalt(t *testing.T) {
	saltPath := filepath.Join(t.TempDir(), "nested", "salt")
	first, err := NewEncryptor("pw", saltPath)
	require.NoError(t, err)

	salt, err := os.ReadFile(saltPath)
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)

	sealed, err := first.Encrypt("hello")
	require.NoError(t, err)

	second, err := NewEncryptor("pw", saltPath)
	require.NoError(t, err)
	plain, err := second.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", plain)
}

func TestDecrypt_WrongPassphraseFails(t *testing.T) {
	salt := make([]byte, SaltSize)
	a, err := NewEncryptorWithSalt("a", salt)
	require.NoError(t, err)
	b, err := NewEncryptorWithSalt("b", salt)
	require.NoError(t, err)

	sealed, err := a.Encrypt("secret")
	require.NoError(t, err)
	_, err = b.Decrypt(sealed)
	require.Error(t, err)
}

func TestDecrypt_RejectsPlainAndTruncated(t *testing.T) {
	enc, err := NewEncryptorWithSalt("pw", make([]byte, SaltSize))
	require.NoError(t, err)

	_, err = enc.Decrypt("plain text")
	require.Error(t, err)

	_, err = enc.Decrypt(Prefix + "AAAA")
	require.Error(t, err)
}

func TestNewEncryptor_EmptyPassphrase(t *testing.T) {
	_, err := NewEncryptor("", filepath.Join(t.TempDir(), "salt"))
	require.ErrorIs(t, err, ErrEmptyPassphrase)
}
