package crypto

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello")},
		{"binary mixed", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"url unsafe chars", []byte{0xfb, 0xf0}}, // Would produce + or / in standard base64
		{"salt sized", make([]byte, 16)},
		{"large data", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := ToBase64URL(tt.data)
			if strings.ContainsAny(encoded, "=+/") {
				t.Errorf("encoded string is not unpadded base64url: %s", encoded)
			}

			decoded, err := FromBase64URL(encoded)
			if err != nil {
				t.Fatalf("FromBase64URL() error = %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip failed: got %v, want %v", decoded, tt.data)
			}
		})
	}
}

func TestFromBase64URL_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid chars", "!!!invalid!!!"},
		{"spaces in middle", "aGVs bG8"},
		{"padded", "YQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBase64URL(tt.input)
			if err == nil {
				t.Error("expected error for invalid input")
			}
		})
	}
}

func TestDecodeBase64_MultipleFormats(t *testing.T) {
	// 0xfb 0xff 0xbf encodes to "-_-_" in base64url and "+/+/" in standard base64.
	original := []byte{0xfb, 0xff, 0xbf, 0x68, 0x69}

	tests := []struct {
		name    string
		encoded string
	}{
		{"raw url encoding", "-_-_aGk"},
		{"url encoding with padding", "-_-_aGk="},
		{"raw standard encoding", "+/+/aGk"},
		{"standard encoding", "+/+/aGk="},
		{"surrounding whitespace", "  -_-_aGk=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64(tt.encoded)
			if err != nil {
				t.Fatalf("DecodeBase64() error = %v", err)
			}
			if !bytes.Equal(decoded, original) {
				t.Errorf("DecodeBase64() = %v, want %v", decoded, original)
			}
		})
	}
}

func TestDecodeBase64_PaddedSalt(t *testing.T) {
	salt, err := DecodeBase64("mUFsKgrmI-i_-HowjX_2XA==")
	if err != nil {
		t.Fatalf("DecodeBase64() error = %v", err)
	}
	if len(salt) != 16 {
		t.Errorf("len = %d, want 16", len(salt))
	}
}

func TestDecodeBase64_InvalidInput(t *testing.T) {
	if _, err := DecodeBase64("!!!invalid!!!"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func BenchmarkToBase64URL(b *testing.B) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ToBase64URL(data)
	}
}

// Example_base64Encoding demonstrates the lenient decoder accepting padded input.
func Example_base64Encoding() {
	data, _ := DecodeBase64("aGVsbG8=")
	fmt.Println(ToBase64URL(data))
	// Output: aGVsbG8
}
