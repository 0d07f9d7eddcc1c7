package crypto

const (
	// AESKeySize is the size of an AES-128 key in bytes.
	AESKeySize = 16
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// HKDFAuthSize is the length of the secret produced by the auth mixing step.
	HKDFAuthSize = 32

	// P256PublicKeySize is the size of an uncompressed P-256 point.
	P256PublicKeySize = 65
	// P256SecretKeySize is the size of a P-256 private scalar.
	P256SecretKeySize = 32

	// X25519KeySize is the size of X25519 public keys, secret keys and
	// shared secrets.
	X25519KeySize = 32
)

// Curve names understood by GenerateKeypair and KeypairFromSecretKey.
const (
	CurveP256   = "P-256"
	CurveX25519 = "X25519"
)

// Info prefixes for the HKDF expansions. Each is followed by a zero byte
// and the derivation context.
const (
	InfoAuth      = "Content-Encoding: auth"
	InfoAESGCM128 = "Content-Encoding: aesgcm128"
	InfoNonce     = "Content-Encoding: nonce"
)

// BuildInfo returns "Content-Encoding: <base>" || 0x00 || context.
func BuildInfo(base string, context []byte) []byte {
	info := make([]byte, 0, len(base)+1+len(context))
	info = append(info, base...)
	info = append(info, 0)
	return append(info, context...)
}
