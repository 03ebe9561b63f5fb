package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	if bytes.Equal(DeriveKey(password, []byte("salt-1")), DeriveKey(password, []byte("salt-2"))) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	encoded, err := HashPassword([]byte("hunter2"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "argon2id$"))
	assert.NotContains(t, encoded, "hunter2")

	ok, err := VerifyPassword(encoded, []byte("hunter2"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("hunter3"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password must differ by salt")
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, encoded := range []string{"", "plaintext", "bcrypt$a$b", "argon2id$!!$AAAA", "argon2id$AAAA$!!"} {
		_, err := VerifyPassword(encoded, []byte("x"))
		assert.ErrorIs(t, err, ErrMalformedHash, encoded)
	}
}

func TestSealOpenDocument_RoundTrip(t *testing.T) {
	key := DocumentKey("passphrase")
	require.Len(t, key, 32)

	plain := []byte(`{"users":[],"objects":[],"posts":[],"nextId":1}`)
	sealed, err := SealDocument(plain, key)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "users")

	got, err := OpenDocument(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestOpenDocument_WrongKeyOrTruncated(t *testing.T) {
	sealed, err := SealDocument([]byte("data"), DocumentKey("a"))
	require.NoError(t, err)

	_, err = OpenDocument(sealed, DocumentKey("b"))
	assert.Error(t, err)

	_, err = OpenDocument(sealed[:4], DocumentKey("a"))
	assert.Error(t, err)

	_, err = SealDocument([]byte("data"), []byte("short"))
	assert.Error(t, err)
}
