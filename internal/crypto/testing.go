package crypto

import "io"

// SetRandReaderForTesting replaces the entropy source for X25519 key
// generation and returns a func that puts the previous one back. P-256
// generation goes through crypto/ecdh, which may ignore the reader.
func SetRandReaderForTesting(r io.Reader) func() {
	prev := randReader
	randReader = r
	return func() { randReader = prev }
}
