package sm2

import "errors"

// Failure kinds surfaced by the engine. Verification mismatches on
// signatures are reported as a boolean result instead, since a failed
// verification is an expected outcome, not an exceptional one.
var (
	// ErrInvalidCiphertext marks a ciphertext shorter than the minimum
	// envelope or with an unparsable key-encapsulation point.
	ErrInvalidCiphertext = errors.New("sm2: malformed ciphertext")

	// ErrIdentitySharedSecret marks a key encapsulation that produced the
	// point at infinity; no keystream can be derived from it.
	ErrIdentitySharedSecret = errors.New("sm2: shared secret is the point at infinity")

	// ErrIntegrityCheck marks a decryption whose recomputed tag does not
	// match C3. The ciphertext was corrupted or forged.
	ErrIntegrityCheck = errors.New("sm2: ciphertext integrity check failed")

	// ErrUnusableNonce marks a nonce draw that produced a degenerate
	// signature component (r = 0, r + k = n, or s = 0).
	ErrUnusableNonce = errors.New("sm2: nonce produces a degenerate signature")

	// ErrRetriesExhausted marks a bounded retry loop that ran out of
	// attempts, pointing at a broken randomness source.
	ErrRetriesExhausted = errors.New("sm2: retries exhausted")
)
