package sm2

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
	"github.com/smallyu/go-sm2/internal/crypto/hashing"
)

func testKeyPair(t *testing.T, e *Engine) *PrivateKey {
	t.Helper()
	priv, err := e.GenerateKey()
	require.NoError(t, err)
	return priv
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	for _, size := range []int{0, 1, 31, 32, 1000} {
		plaintext := make([]byte, size)
		_, err := rand.Read(plaintext)
		require.NoError(t, err)

		ciphertext, err := engine.Encrypt(&priv.PublicKey, plaintext)
		require.NoError(t, err, "size %d", size)
		assert.Len(t, ciphertext, 65+32+size)

		got, err := engine.Decrypt(priv, ciphertext)
		require.NoError(t, err, "size %d", size)
		assert.True(t, bytes.Equal(plaintext, got), "size %d", size)
	}
}

func TestEncryptDecryptWithFallbackHash(t *testing.T) {
	engine := NewEngineWith(ec.SM2P256V1(), hashing.SHA256, rand.Reader)
	priv := testKeyPair(t, engine)

	plaintext := []byte("fallback digest round trip")
	ciphertext, err := engine.Encrypt(&priv.PublicKey, plaintext)
	require.NoError(t, err)

	got, err := engine.Decrypt(priv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptProducesFreshCiphertexts(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)
	plaintext := []byte("same message twice")

	c1, err := engine.Encrypt(&priv.PublicKey, plaintext)
	require.NoError(t, err)
	c2, err := engine.Encrypt(&priv.PublicKey, plaintext)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(c1, c2), "two encryptions shared an ephemeral scalar")
}

func TestDecryptRejectsCorruptedTag(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	ciphertext, err := engine.Encrypt(&priv.PublicKey, []byte("tamper target"))
	require.NoError(t, err)

	// C3 occupies bytes [65, 97). Any single corrupted byte must be fatal.
	for _, offset := range []int{65, 80, 96} {
		corrupted := append([]byte{}, ciphertext...)
		corrupted[offset] ^= 0x01
		_, err := engine.Decrypt(priv, corrupted)
		assert.ErrorIs(t, err, ErrIntegrityCheck, "tag byte %d", offset)
	}
}

func TestDecryptRejectsCorruptedBody(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	ciphertext, err := engine.Encrypt(&priv.PublicKey, []byte("tamper target"))
	require.NoError(t, err)

	corrupted := append([]byte{}, ciphertext...)
	corrupted[len(corrupted)-1] ^= 0x01
	_, err = engine.Decrypt(priv, corrupted)
	assert.ErrorIs(t, err, ErrIntegrityCheck)
}

func TestDecryptRejectsMalformedEnvelope(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	ciphertext, err := engine.Encrypt(&priv.PublicKey, []byte("envelope"))
	require.NoError(t, err)

	// Shorter than the minimum C1 || C3 envelope.
	_, err = engine.Decrypt(priv, ciphertext[:96])
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = engine.Decrypt(priv, nil)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	// Broken C1 tag byte.
	corrupted := append([]byte{}, ciphertext...)
	corrupted[0] = 0x02
	_, err = engine.Decrypt(priv, corrupted)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	// C1 coordinates pushed off the curve.
	corrupted = append([]byte{}, ciphertext...)
	corrupted[10] ^= 0xFF
	_, err = engine.Decrypt(priv, corrupted)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	engine := NewEngine()
	alice := testKeyPair(t, engine)
	mallory := testKeyPair(t, engine)

	ciphertext, err := engine.Encrypt(&alice.PublicKey, []byte("for alice only"))
	require.NoError(t, err)

	_, err = engine.Decrypt(mallory, ciphertext)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIntegrityCheck), "wrong key must surface as an integrity failure, got %v", err)
}
