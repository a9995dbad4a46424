package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAESCipher_RoundTrip(t *testing.T) {
	c, err := NewAESCipher("secret-key")
	require.NoError(t, err)

	stored, err := c.Encrypt("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored)

	plain, err := c.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "hunter22", plain)
	assert.True(t, c.Verify(stored, "hunter22"))
	assert.False(t, c.Verify(stored, "hunter23"))
}

func TestAESCipher_RejectsGarbageAndForeignKey(t *testing.T) {
	c, err := NewAESCipher("secret-key")
	require.NoError(t, err)
	other, err := NewAESCipher("other-key")
	require.NoError(t, err)

	stored, err := other.Encrypt("hunter22")
	require.NoError(t, err)

	assert.False(t, c.Verify(stored, "hunter22"))
	assert.False(t, c.Verify("not base64 !!", "hunter22"))
	assert.False(t, c.Verify("", ""))
}

func TestBcryptCipher(t *testing.T) {
	c := NewBcryptCipher(bcrypt.MinCost)

	stored, err := c.Encrypt("hunter22")
	require.NoError(t, err)
	assert.True(t, c.Verify(stored, "hunter22"))
	assert.False(t, c.Verify(stored, "nope"))
}

func TestNewCipher(t *testing.T) {
	c, err := NewCipher(SchemeAES, "k")
	require.NoError(t, err)
	assert.IsType(t, &AESCipher{}, c)

	c, err = NewCipher(SchemeBcrypt, "")
	require.NoError(t, err)
	assert.IsType(t, &BcryptCipher{}, c)

	_, err = NewCipher("rot13", "")
	assert.Error(t, err)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("s3cret")
	token, err := issuer.Issue("sid-1", testUser())
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "u1", claims.UserID)

	_, err = NewTokenIssuer("other").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
