package ecdsa

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
	"github.com/smallyu/go-sm2/internal/crypto/hashing"
	"github.com/smallyu/go-sm2/internal/crypto/schnorr"
)

func TestRecoverFromSharedSchnorrNonce(t *testing.T) {
	curve := ec.Secp256k1()
	scheme := NewScheme(curve, rand.Reader)

	d, _, err := scheme.GenerateKey()
	require.NoError(t, err)
	k, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)

	message := []byte("shared (d, k) across two schemes")

	// The same key and nonce feed both an ECDSA signature and a Schnorr
	// proof. Each transcript is harmless alone; together they leak d.
	sig, err := scheme.SignWithNonce(d, message, k)
	require.NoError(t, err)

	proof, err := schnorr.ProveWithNonce(curve, hashing.SHA256, d, k)
	require.NoError(t, err)

	eECDSA := scheme.Digest(message)
	eSchnorr := schnorr.Challenge(curve, hashing.SHA256, curve.ScalarBaseMult(d), proof.R)

	recovered, err := scheme.RecoverFromSharedSchnorrNonce(sig, eECDSA, proof, eSchnorr)
	require.NoError(t, err)
	assert.Equal(t, 0, recovered.Cmp(d), "cross-scheme transcript failed to pin the private key")
}
