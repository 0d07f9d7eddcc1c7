package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

var curves = []string{CurveP256, CurveX25519}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGenerateKeypair(t *testing.T) {
	sizes := map[string][2]int{
		CurveP256:   {P256PublicKeySize, P256SecretKeySize},
		CurveX25519: {X25519KeySize, X25519KeySize},
	}

	for _, curve := range curves {
		t.Run(curve, func(t *testing.T) {
			kp, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatalf("GenerateKeypair() error = %v", err)
			}

			if len(kp.PublicKey) != sizes[curve][0] {
				t.Errorf("PublicKey size = %d, want %d", len(kp.PublicKey), sizes[curve][0])
			}
			if len(kp.SecretKey) != sizes[curve][1] {
				t.Errorf("SecretKey size = %d, want %d", len(kp.SecretKey), sizes[curve][1])
			}
			if kp.Curve != curve {
				t.Errorf("Curve = %q, want %q", kp.Curve, curve)
			}
		})
	}
}

func TestGenerateKeypair_P256Uncompressed(t *testing.T) {
	kp, err := GenerateKeypair(CurveP256)
	if err != nil {
		t.Fatal(err)
	}
	if kp.PublicKey[0] != 0x04 {
		t.Errorf("P-256 public key prefix = %#x, want 0x04", kp.PublicKey[0])
	}
}

func TestGenerateKeypair_Uniqueness(t *testing.T) {
	for _, curve := range curves {
		t.Run(curve, func(t *testing.T) {
			kp1, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatalf("GenerateKeypair() error = %v", err)
			}
			kp2, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatalf("GenerateKeypair() error = %v", err)
			}

			if bytes.Equal(kp1.PublicKey, kp2.PublicKey) {
				t.Error("Generated keypairs have identical public keys")
			}
			if bytes.Equal(kp1.SecretKey, kp2.SecretKey) {
				t.Error("Generated keypairs have identical secret keys")
			}
		})
	}
}

func TestGenerateKeypair_UnsupportedCurve(t *testing.T) {
	_, err := GenerateKeypair("P-521")
	if !errors.Is(err, ErrUnsupportedCurve) {
		t.Errorf("expected ErrUnsupportedCurve, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateKeypair_RandFailure(t *testing.T) {
	restore := SetRandReaderForTesting(failingReader{})
	defer restore()

	if _, err := GenerateKeypair(CurveX25519); err == nil {
		t.Error("expected error when the random source fails")
	}
}

func TestKeypairFromSecretKey(t *testing.T) {
	for _, curve := range curves {
		t.Run(curve, func(t *testing.T) {
			original, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatalf("GenerateKeypair() error = %v", err)
			}

			reconstructed, err := KeypairFromSecretKey(curve, original.SecretKey)
			if err != nil {
				t.Fatalf("KeypairFromSecretKey() error = %v", err)
			}

			if !bytes.Equal(original.PublicKey, reconstructed.PublicKey) {
				t.Error("Reconstructed public key does not match original")
			}
			if !bytes.Equal(original.SecretKey, reconstructed.SecretKey) {
				t.Error("Reconstructed secret key does not match original")
			}
		})
	}
}

func TestKeypairFromSecretKey_InvalidSize(t *testing.T) {
	tests := []struct {
		name  string
		curve string
		key   []byte
	}{
		{"p256 empty", CurveP256, []byte{}},
		{"p256 one byte short", CurveP256, make([]byte, P256SecretKeySize-1)},
		{"p256 one byte long", CurveP256, make([]byte, P256SecretKeySize+1)},
		{"p256 zero scalar", CurveP256, make([]byte, P256SecretKeySize)},
		{"x25519 empty", CurveX25519, []byte{}},
		{"x25519 one byte long", CurveX25519, make([]byte, X25519KeySize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KeypairFromSecretKey(tt.curve, tt.key)
			if !errors.Is(err, ErrInvalidSecretKeySize) {
				t.Errorf("expected ErrInvalidSecretKeySize, got %v", err)
			}
		})
	}
}

// RFC 7748, section 6.1.
func TestKeypair_SharedSecret_X25519Vector(t *testing.T) {
	alice, err := KeypairFromSecretKey(CurveX25519, mustHex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a"))
	if err != nil {
		t.Fatal(err)
	}
	bob, err := KeypairFromSecretKey(CurveX25519, mustHex(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb"))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := hex.EncodeToString(alice.PublicKey), "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a"; got != want {
		t.Errorf("alice public = %s, want %s", got, want)
	}
	if got, want := hex.EncodeToString(bob.PublicKey), "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f"; got != want {
		t.Errorf("bob public = %s, want %s", got, want)
	}

	shared, err := alice.SharedSecret(bob.PublicKey)
	if err != nil {
		t.Fatalf("SharedSecret() error = %v", err)
	}
	if got, want := hex.EncodeToString(shared), "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742"; got != want {
		t.Errorf("shared = %s, want %s", got, want)
	}
}

func TestKeypair_SharedSecret_Symmetric(t *testing.T) {
	for _, curve := range curves {
		t.Run(curve, func(t *testing.T) {
			a, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatal(err)
			}
			b, err := GenerateKeypair(curve)
			if err != nil {
				t.Fatal(err)
			}

			ab, err := a.SharedSecret(b.PublicKey)
			if err != nil {
				t.Fatalf("a.SharedSecret() error = %v", err)
			}
			ba, err := b.SharedSecret(a.PublicKey)
			if err != nil {
				t.Fatalf("b.SharedSecret() error = %v", err)
			}
			if !bytes.Equal(ab, ba) {
				t.Error("shared secrets differ")
			}
		})
	}
}

func TestKeypair_SharedSecret_InvalidPeer(t *testing.T) {
	p256, err := GenerateKeypair(CurveP256)
	if err != nil {
		t.Fatal(err)
	}
	x, err := GenerateKeypair(CurveX25519)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("p256 wrong size", func(t *testing.T) {
		_, err := p256.SharedSecret(make([]byte, 33))
		if !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
		}
	})

	t.Run("p256 point not on curve", func(t *testing.T) {
		bad := make([]byte, P256PublicKeySize)
		bad[0] = 0x04
		bad[1] = 0x01
		_, err := p256.SharedSecret(bad)
		if !errors.Is(err, ErrInvalidPublicKey) {
			t.Errorf("expected ErrInvalidPublicKey, got %v", err)
		}
	})

	t.Run("x25519 wrong size", func(t *testing.T) {
		_, err := x.SharedSecret(make([]byte, P256PublicKeySize))
		if !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
		}
	})

	t.Run("x25519 low order point", func(t *testing.T) {
		_, err := x.SharedSecret(make([]byte, X25519KeySize))
		if !errors.Is(err, ErrInvalidPublicKey) {
			t.Errorf("expected ErrInvalidPublicKey, got %v", err)
		}
	})

	t.Run("unknown curve", func(t *testing.T) {
		kp := &Keypair{Curve: "secp256k1"}
		_, err := kp.SharedSecret(make([]byte, 32))
		if !errors.Is(err, ErrUnsupportedCurve) {
			t.Errorf("expected ErrUnsupportedCurve, got %v", err)
		}
	})
}

func BenchmarkGenerateKeypair(b *testing.B) {
	for _, curve := range curves {
		b.Run(curve, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := GenerateKeypair(curve); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSharedSecret(b *testing.B) {
	for _, curve := range curves {
		b.Run(curve, func(b *testing.B) {
			a, _ := GenerateKeypair(curve)
			peer, _ := GenerateKeypair(curve)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := a.SharedSecret(peer.PublicKey); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
