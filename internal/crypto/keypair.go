package crypto

import (
	"bytes"
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// randReader is the random source used for key generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func random() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// Keypair represents an elliptic-curve Diffie-Hellman keypair.
type Keypair struct {
	// Curve is CurveP256 or CurveX25519.
	Curve string
	// PublicKey is the raw public key bytes. P-256 keys are uncompressed points.
	PublicKey []byte
	// SecretKey is the raw private key bytes.
	SecretKey []byte
}

// GenerateKeypair creates a new keypair on the named curve.
func GenerateKeypair(curve string) (*Keypair, error) {
	switch curve {
	case CurveP256:
		priv, err := ecdh.P256().GenerateKey(random())
		if err != nil {
			return nil, err
		}
		return newKeypair(curve, priv.Bytes(), priv.PublicKey().Bytes()), nil

	case CurveX25519:
		var sk, pk x25519.Key
		if _, err := io.ReadFull(random(), sk[:]); err != nil {
			return nil, err
		}
		x25519.KeyGen(&pk, &sk)
		return newKeypair(curve, sk[:], pk[:]), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, curve)
}

// KeypairFromSecretKey reconstructs a keypair from the private key.
// The public key is recomputed from the private key.
func KeypairFromSecretKey(curve string, secretKey []byte) (*Keypair, error) {
	switch curve {
	case CurveP256:
		if len(secretKey) != P256SecretKeySize {
			return nil, ErrInvalidSecretKeySize
		}
		priv, err := ecdh.P256().NewPrivateKey(secretKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKeySize, err)
		}
		return newKeypair(curve, priv.Bytes(), priv.PublicKey().Bytes()), nil

	case CurveX25519:
		if len(secretKey) != X25519KeySize {
			return nil, ErrInvalidSecretKeySize
		}
		var sk, pk x25519.Key
		copy(sk[:], secretKey)
		x25519.KeyGen(&pk, &sk)
		return newKeypair(curve, sk[:], pk[:]), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, curve)
}

func newKeypair(curve string, secretKey, publicKey []byte) *Keypair {
	return &Keypair{
		Curve:     curve,
		PublicKey: bytes.Clone(publicKey),
		SecretKey: bytes.Clone(secretKey),
	}
}

// SharedSecret computes the Diffie-Hellman shared secret between the
// keypair's private key and the peer's public key.
func (k *Keypair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	switch k.Curve {
	case CurveP256:
		if len(peerPublicKey) != P256PublicKeySize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(peerPublicKey), P256PublicKeySize)
		}
		priv, err := ecdh.P256().NewPrivateKey(k.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKeySize, err)
		}
		pub, err := ecdh.P256().NewPublicKey(peerPublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		shared, err := priv.ECDH(pub)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		return shared, nil

	case CurveX25519:
		if len(peerPublicKey) != X25519KeySize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(peerPublicKey), X25519KeySize)
		}
		if len(k.SecretKey) != X25519KeySize {
			return nil, ErrInvalidSecretKeySize
		}
		var sk, pk, shared x25519.Key
		copy(sk[:], k.SecretKey)
		copy(pk[:], peerPublicKey)
		// Shared reports false for low-order points.
		if !x25519.Shared(&shared, &sk, &pk) {
			return nil, ErrInvalidPublicKey
		}
		return shared[:], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, k.Curve)
}
