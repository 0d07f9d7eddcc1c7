// Package ece implements the encrypted content-coding for HTTP: a
// record-based format that splits a message into fixed-size records, each
// encrypted with AES-128-GCM under a key and nonce derived with HKDF-SHA-256
// from a 16 octet salt and a shared secret.
//
// Basic usage:
//
//	salt := make([]byte, ece.SaltSize)
//	if _, err := rand.Read(salt); err != nil {
//	    log.Fatal(err)
//	}
//
//	ciphertext, err := ece.Encrypt(message, salt, ece.RawKey(key))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := ece.Decrypt(ciphertext, salt, ece.RawKey(key))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Secret Sources
//
// The shared secret comes from exactly one [SecretSource]:
//
//   - [RawKey]: the secret is supplied directly.
//   - [DiffieHellman]: the secret is agreed between a labeled key pair in a
//     [Registry] and the peer's public key. The label and both public keys
//     are bound into the derivation.
//   - [RegistryKey]: the secret is a static key stored in a [Registry].
//
// The registry is an ordinary value handed to each call with [WithRegistry].
//
// # Errors
//
// Every error matches one of [ErrConfiguration], [ErrValidation] or
// [ErrAuthentication] with errors.Is, and unwraps to a more specific cause
// such as [ErrTruncated] or [ErrBadPadding]. [ErrAuthentication] means the
// ciphertext was modified or the key is wrong.
//
// # Salts
//
// Salts are not generated here. A salt must never be reused with the same
// secret: the derived key and nonce depend only on the salt, the secret and
// the context.
package ece
