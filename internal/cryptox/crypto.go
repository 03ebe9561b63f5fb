// Package cryptox holds the archive's cryptographic helpers: salted argon2id
// password hashes and AES-GCM sealing of the stored document.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	hashScheme = "argon2id"
)

// ErrMalformedHash is returned when a stored password hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches secret with salt using argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns an encoded, salted argon2id hash of password:
//
//	argon2id$<base64 salt>$<base64 key>
func HashPassword(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(saltLen)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	enc := base64.RawStdEncoding
	return strings.Join([]string{hashScheme, enc.EncodeToString(salt), enc.EncodeToString(key)}, "$"), nil
}

// VerifyPassword reports whether password matches an encoded hash produced
// by HashPassword. The comparison is constant time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return false, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	got := DeriveKey(password, salt)
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// DocumentKey turns a configured passphrase into an AES-256 key. The salt is
// fixed so that every process opening the same store derives the same key.
func DocumentKey(passphrase string) []byte {
	return DeriveKey([]byte(passphrase), []byte(common.DocumentKey))
}

// SealDocument encrypts plaintext with AES-GCM under key. The random nonce
// is prepended to the ciphertext.
func SealDocument(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenDocument reverses SealDocument.
func OpenDocument(sealed, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, errors.New("sealed document too short")
	}

	return aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
