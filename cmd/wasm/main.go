//go:build js && wasm

package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-sm2/pkg/sm2"
)

// engine serves every call; it is immutable after construction and safe
// for concurrent use from the JS side.
var engine = sm2.NewEngine()

func main() {
	c := make(chan struct{})

	fmt.Println("Go SM2 WASM Initialized")

	// Expose Go functions to JS. All binary arguments and results are
	// hex-encoded strings; errors come back as "error: ..." strings.
	js.Global().Set("GoSM2", map[string]interface{}{
		"GenerateKey": js.FuncOf(GenerateKey),
		"Encrypt":     js.FuncOf(Encrypt),
		"Decrypt":     js.FuncOf(Decrypt),
		"Sign":        js.FuncOf(Sign),
		"Verify":      js.FuncOf(Verify),
	})

	<-c
}

// GenerateKey returns {privateKey, publicKey} with the public key in the
// uncompressed 0x04 encoding.
func GenerateKey(this js.Value, args []js.Value) interface{} {
	priv, err := engine.GenerateKey()
	if err != nil {
		return errString(err)
	}
	pubBytes, err := engine.Curve().EncodePoint(priv.Point)
	if err != nil {
		return errString(err)
	}
	return map[string]interface{}{
		"privateKey": fmt.Sprintf("%064x", priv.D),
		"publicKey":  hex.EncodeToString(pubBytes),
	}
}

// Encrypt expects (publicKeyHex, plaintextHex) and returns the ciphertext
// envelope C1 || C3 || C2 as hex.
func Encrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (publicKey, plaintext)"
	}
	pub, err := decodePublicKey(args[0].String())
	if err != nil {
		return errString(err)
	}
	plaintext, err := hex.DecodeString(args[1].String())
	if err != nil {
		return errString(err)
	}
	ciphertext, err := engine.Encrypt(pub, plaintext)
	if err != nil {
		return errString(err)
	}
	return hex.EncodeToString(ciphertext)
}

// Decrypt expects (privateKeyHex, ciphertextHex) and returns the
// plaintext as hex.
func Decrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (privateKey, ciphertext)"
	}
	priv, err := decodePrivateKey(args[0].String())
	if err != nil {
		return errString(err)
	}
	ciphertext, err := hex.DecodeString(args[1].String())
	if err != nil {
		return errString(err)
	}
	plaintext, err := engine.Decrypt(priv, ciphertext)
	if err != nil {
		return errString(err)
	}
	return hex.EncodeToString(plaintext)
}

// Sign expects (privateKeyHex, messageHex) and returns {r, s}.
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (privateKey, message)"
	}
	priv, err := decodePrivateKey(args[0].String())
	if err != nil {
		return errString(err)
	}
	message, err := hex.DecodeString(args[1].String())
	if err != nil {
		return errString(err)
	}
	sig, err := engine.Sign(priv, message)
	if err != nil {
		return errString(err)
	}
	return map[string]interface{}{
		"r": fmt.Sprintf("%064x", sig.R),
		"s": fmt.Sprintf("%064x", sig.S),
	}
}

// Verify expects (publicKeyHex, messageHex, rHex, sHex) and returns a
// boolean.
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 4 {
		return "error: expected 4 arguments (publicKey, message, r, s)"
	}
	pub, err := decodePublicKey(args[0].String())
	if err != nil {
		return errString(err)
	}
	message, err := hex.DecodeString(args[1].String())
	if err != nil {
		return errString(err)
	}
	r, ok := new(big.Int).SetString(args[2].String(), 16)
	if !ok {
		return "error: invalid r"
	}
	s, ok := new(big.Int).SetString(args[3].String(), 16)
	if !ok {
		return "error: invalid s"
	}
	return engine.Verify(pub, message, &sm2.Signature{R: r, S: s})
}

func decodePublicKey(encoded string) (*sm2.PublicKey, error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	point, err := engine.Curve().DecodePoint(raw)
	if err != nil {
		return nil, err
	}
	return &sm2.PublicKey{Point: point}, nil
}

func decodePrivateKey(encoded string) (*sm2.PrivateKey, error) {
	d, ok := new(big.Int).SetString(encoded, 16)
	if !ok {
		return nil, fmt.Errorf("invalid private key hex")
	}
	priv := &sm2.PrivateKey{D: d}
	priv.Point = engine.Curve().ScalarBaseMult(d)
	return priv, nil
}

func errString(err error) string {
	return "error: " + err.Error()
}
