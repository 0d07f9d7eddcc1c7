// Package crypto provides the cryptographic primitives behind encrypted
// content-coding records.
//
// # Algorithm Suite
//
//   - AES-128-GCM: authenticated encryption of each record. The tag is
//     16 bytes and travels after the record's ciphertext.
//
//   - HKDF-SHA-256 (RFC 5869): derives the content-encryption key, the
//     nonce base and the optional auth-secret mix. Info strings have the
//     form "Content-Encoding: <label>" || 0x00 || context, see [BuildInfo].
//
//   - ECDH over P-256 or X25519: key agreement for the Diffie-Hellman
//     secret source. P-256 public keys are uncompressed 65-byte points.
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Callers derive per-record nonces from a nonce base and a record counter;
// this package does not track nonces.
//
// # Base64 Encoding
//
// [ToBase64URL]/[FromBase64URL] use URL-safe base64 without padding.
// [DecodeBase64] accepts any of the four common variants.
package crypto
