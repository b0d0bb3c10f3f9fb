package sm2

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests prove the documented fragility of the signature equations:
// once the nonce contract is broken, the private key falls out of public
// transcripts in closed form.

func signedWithNonce(t *testing.T, engine *Engine, priv *PrivateKey, message []byte) (*Signature, *big.Int) {
	t.Helper()
	for {
		k, err := engine.Curve().RandomScalar(rand.Reader)
		require.NoError(t, err)
		sig, err := engine.SignWithNonce(priv, message, k)
		if err == nil {
			return sig, k
		}
		require.ErrorIs(t, err, ErrUnusableNonce)
	}
}

func TestRecoverFromLeakedNonce(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	sig, k := signedWithNonce(t, engine, priv, []byte("leaking the nonce leaks the key"))

	recovered, err := RecoverFromLeakedNonce(engine, k, sig)
	require.NoError(t, err)
	assert.Equal(t, 0, recovered.Cmp(priv.D), "recovered key differs from the signer's")
}

func TestRecoverFromRepeatedNonce(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	k, err := engine.Curve().RandomScalar(rand.Reader)
	require.NoError(t, err)

	sig1, err := engine.SignWithNonce(priv, []byte("first message"), k)
	require.NoError(t, err)
	sig2, err := engine.SignWithNonce(priv, []byte("second message"), k)
	require.NoError(t, err)

	recovered, err := RecoverFromRepeatedNonce(engine, sig1, sig2)
	require.NoError(t, err)
	assert.Equal(t, 0, recovered.Cmp(priv.D))
}

func TestRecoverAcrossUsersSharingANonce(t *testing.T) {
	engine := NewEngine()
	alice := testKeyPair(t, engine)
	bob := testKeyPair(t, engine)

	k, err := engine.Curve().RandomScalar(rand.Reader)
	require.NoError(t, err)

	_, err = engine.SignWithNonce(alice, []byte("alice's message"), k)
	require.NoError(t, err)
	bobSig, err := engine.SignWithNonce(bob, []byte("bob's message"), k)
	require.NoError(t, err)

	// Alice knows k, so Bob's signature hands her Bob's private key.
	recovered, err := RecoverFromLeakedNonce(engine, k, bobSig)
	require.NoError(t, err)
	assert.Equal(t, 0, recovered.Cmp(bob.D))
}

func TestFreshNoncesDoNotCollide(t *testing.T) {
	engine := NewEngine()
	priv := testKeyPair(t, engine)

	sig1, err := engine.Sign(priv, []byte("same message"))
	require.NoError(t, err)
	sig2, err := engine.Sign(priv, []byte("same message"))
	require.NoError(t, err)

	// Distinct nonces make r differ with overwhelming probability, and the
	// two-signature recovery must not produce the private key.
	assert.NotEqual(t, 0, sig1.R.Cmp(sig2.R))
	recovered, err := RecoverFromRepeatedNonce(engine, sig1, sig2)
	if err == nil {
		assert.NotEqual(t, 0, recovered.Cmp(priv.D))
	}
}
