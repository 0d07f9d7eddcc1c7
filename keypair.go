package ece

import (
	"bytes"
	"fmt"

	"github.com/majacQ/encrypted-content-encoding/internal/crypto"
)

// KeyPair is the Diffie-Hellman capability consumed by DeriveKey.
type KeyPair interface {
	// PublicKey returns the encoded public key placed in the derivation context.
	PublicKey() []byte
	// SharedSecret computes the agreed secret with the peer's public key.
	SharedSecret(peerPublicKey []byte) ([]byte, error)
}

// Curve names an elliptic curve supported by ECKeyPair.
type Curve string

const (
	// CurveP256 is NIST P-256 (prime256v1) with uncompressed public keys.
	CurveP256 Curve = crypto.CurveP256
	// CurveX25519 is the X25519 function from RFC 7748.
	CurveX25519 Curve = crypto.CurveX25519
)

// ECKeyPair is an elliptic-curve key pair usable as a registry entry.
type ECKeyPair struct {
	kp *crypto.Keypair
}

// GenerateKeyPair creates a new random key pair on curve.
func GenerateKeyPair(curve Curve) (*ECKeyPair, error) {
	kp, err := crypto.GenerateKeypair(string(curve))
	if err != nil {
		return nil, fmt.Errorf("generate %s key pair: %w", curve, err)
	}
	return &ECKeyPair{kp: kp}, nil
}

// KeyPairFromPrivateKey rebuilds a key pair from its private key bytes.
func KeyPairFromPrivateKey(curve Curve, privateKey []byte) (*ECKeyPair, error) {
	kp, err := crypto.KeypairFromSecretKey(string(curve), privateKey)
	if err != nil {
		return nil, fmt.Errorf("load %s key pair: %w", curve, err)
	}
	return &ECKeyPair{kp: kp}, nil
}

// Curve returns the key pair's curve.
func (k *ECKeyPair) Curve() Curve { return Curve(k.kp.Curve) }

// PublicKey returns a copy of the public key.
func (k *ECKeyPair) PublicKey() []byte { return bytes.Clone(k.kp.PublicKey) }

// PrivateKey returns a copy of the private key.
func (k *ECKeyPair) PrivateKey() []byte { return bytes.Clone(k.kp.SecretKey) }

// SharedSecret implements KeyPair.
func (k *ECKeyPair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	return k.kp.SharedSecret(peerPublicKey)
}
