package account

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeAES    = "aes"
	SchemeBcrypt = "bcrypt"
)

// PasswordCipher turns a plaintext password into its stored form and checks
// a candidate against it.
type PasswordCipher interface {
	Encrypt(plain string) (string, error)
	Verify(stored, plain string) bool
}

func NewCipher(scheme, key string) (PasswordCipher, error) {
	switch scheme {
	case SchemeAES, "":
		return NewAESCipher(key)
	case SchemeBcrypt:
		return NewBcryptCipher(bcrypt.DefaultCost), nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// AESCipher stores passwords reversibly under one static key. Anyone holding
// the key can read every password.
type AESCipher struct {
	aead cipher.AEAD
}

func NewAESCipher(key string) (*AESCipher, error) {
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESCipher{aead: aead}, nil
}

func (c *AESCipher) Encrypt(plain string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *AESCipher) Decrypt(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	n := c.aead.NonceSize()
	if len(raw) < n {
		return "", errors.New("ciphertext too short")
	}
	plain, err := c.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Verify treats undecryptable ciphertext as a mismatch.
func (c *AESCipher) Verify(stored, plain string) bool {
	decrypted, err := c.Decrypt(stored)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(decrypted), []byte(plain)) == 1
}

type BcryptCipher struct {
	cost int
}

func NewBcryptCipher(cost int) *BcryptCipher {
	return &BcryptCipher{cost: cost}
}

func (c *BcryptCipher) Encrypt(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (c *BcryptCipher) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
