package crypto

import "errors"

var (
	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidPublicKey is returned when a peer public key is not a valid
	// point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrUnsupportedCurve is returned for a curve name this package does not know.
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrDecryptionFailed is returned when tag verification fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidTagSize is returned when an authentication tag is not 16 bytes.
	ErrInvalidTagSize = errors.New("invalid tag size")
)
