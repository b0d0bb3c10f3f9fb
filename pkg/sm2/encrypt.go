package sm2

import (
	"crypto/subtle"
	"fmt"

	"github.com/smallyu/go-sm2/internal/crypto/kdf"
)

// Ciphertext layout: C1 (encoded ephemeral point, 1+64 bytes) followed by
// C3 (32-byte integrity tag) followed by C2 (masked message, same length
// as the plaintext). The tag is computed over Z || plaintext, where Z is
// the encoded shared point, and both directions hold to that order.

// Encrypt encrypts plaintext for the holder of pub. The ephemeral scalar
// multiplies the base point on the windowed path and the recipient key on
// the ladder, since only the latter pairs a secret scalar with an
// arbitrary point.
func (e *Engine) Encrypt(pub *PublicKey, plaintext []byte) ([]byte, error) {
	k, err := e.curve.RandomScalar(e.random)
	if err != nil {
		return nil, fmt.Errorf("sm2: drawing ephemeral scalar: %w", err)
	}

	c1, err := e.curve.EncodePoint(e.curve.ScalarBaseMult(k))
	if err != nil {
		return nil, fmt.Errorf("sm2: encoding C1: %w", err)
	}

	shared := e.curve.ScalarMult(k, pub.Point)
	if shared.IsInfinity() {
		return nil, ErrIdentitySharedSecret
	}
	z, err := e.curve.EncodePoint(shared)
	if err != nil {
		return nil, fmt.Errorf("sm2: encoding shared point: %w", err)
	}

	t, err := kdf.Derive(e.alg, z, len(plaintext))
	if err != nil {
		return nil, fmt.Errorf("sm2: deriving keystream: %w", err)
	}

	c2 := make([]byte, len(plaintext))
	for i := range plaintext {
		c2[i] = plaintext[i] ^ t[i]
	}
	c3 := e.alg.Sum(z, plaintext)

	out := make([]byte, 0, len(c1)+len(c3)+len(c2))
	out = append(out, c1...)
	out = append(out, c3...)
	out = append(out, c2...)
	return out, nil
}

// Decrypt reverses Encrypt. The ciphertext is either accepted whole or
// rejected whole: a tag mismatch yields ErrIntegrityCheck and no
// plaintext.
func (e *Engine) Decrypt(priv *PrivateKey, ciphertext []byte) ([]byte, error) {
	c1Len := e.curve.EncodedPointSize()
	minLen := c1Len + e.alg.Size()
	if len(ciphertext) < minLen {
		return nil, ErrInvalidCiphertext
	}

	c1, err := e.curve.DecodePoint(ciphertext[:c1Len])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	c3 := ciphertext[c1Len:minLen]
	c2 := ciphertext[minLen:]

	shared := e.curve.ScalarMult(priv.D, c1)
	if shared.IsInfinity() {
		return nil, ErrIdentitySharedSecret
	}
	z, err := e.curve.EncodePoint(shared)
	if err != nil {
		return nil, fmt.Errorf("sm2: encoding shared point: %w", err)
	}

	t, err := kdf.Derive(e.alg, z, len(c2))
	if err != nil {
		return nil, fmt.Errorf("sm2: deriving keystream: %w", err)
	}

	plaintext := make([]byte, len(c2))
	for i := range c2 {
		plaintext[i] = c2[i] ^ t[i]
	}

	if subtle.ConstantTimeCompare(e.alg.Sum(z, plaintext), c3) != 1 {
		return nil, ErrIntegrityCheck
	}
	return plaintext, nil
}
