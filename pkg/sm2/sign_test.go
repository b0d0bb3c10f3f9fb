package sm2

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
	"github.com/smallyu/go-sm2/internal/crypto/hashing"
)

func TestSignVerify(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)
	message := []byte("message under signature")

	sig, err := engine.Sign(priv, message)
	require.NoError(t, err)
	assert.True(t, engine.Verify(&priv.PublicKey, message, sig))
}

func TestVerifyRejectsTamperedInputs(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)
	message := []byte("message under signature")

	sig, err := engine.Sign(priv, message)
	require.NoError(t, err)

	// Flipped message bit.
	tampered := append([]byte{}, message...)
	tampered[0] ^= 0x01
	assert.False(t, engine.Verify(&priv.PublicKey, tampered, sig))

	// Tampered r.
	badR := &Signature{R: new(big.Int).Add(sig.R, big.NewInt(1)), S: sig.S}
	assert.False(t, engine.Verify(&priv.PublicKey, message, badR))

	// Tampered s.
	badS := &Signature{R: sig.R, S: new(big.Int).Add(sig.S, big.NewInt(1))}
	assert.False(t, engine.Verify(&priv.PublicKey, message, badS))

	// Wrong public key.
	other := testKeyPair(t, engine)
	assert.False(t, engine.Verify(&other.PublicKey, message, sig))
}

func TestVerifyRejectsOutOfRangeComponents(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)
	message := []byte("range checks")

	sig, err := engine.Sign(priv, message)
	require.NoError(t, err)

	n := engine.Curve().Params().N
	cases := []*Signature{
		{R: big.NewInt(0), S: sig.S},
		{R: n, S: sig.S},
		{R: sig.R, S: big.NewInt(0)},
		{R: sig.R, S: new(big.Int).Add(n, big.NewInt(5))},
		nil,
	}
	for i, bad := range cases {
		assert.False(t, engine.Verify(&priv.PublicKey, message, bad), "case %d", i)
	}
}

func TestSignWithNonceIsDeterministic(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)
	message := []byte("pinned nonce")

	k, err := engine.Curve().RandomScalar(rand.Reader)
	require.NoError(t, err)

	sig1, err := engine.SignWithNonce(priv, message, k)
	require.NoError(t, err)
	sig2, err := engine.SignWithNonce(priv, message, k)
	require.NoError(t, err)

	assert.Equal(t, 0, sig1.R.Cmp(sig2.R))
	assert.Equal(t, 0, sig1.S.Cmp(sig2.S))
	assert.True(t, engine.Verify(&priv.PublicKey, message, sig1))
}

func TestSignSurfacesBrokenRandomness(t *testing.T) {
	engine := NewEngineWith(ec.SM2P256V1(), hashing.SM3, failingReader{})
	priv := &PrivateKey{D: big.NewInt(7)}
	priv.Point = engine.Curve().ScalarBaseMult(priv.D)

	_, err := engine.Sign(priv, []byte("no entropy"))
	require.Error(t, err)

	_, err = engine.GenerateKey()
	require.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}
