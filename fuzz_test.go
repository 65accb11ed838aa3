package cbc

import (
	"bytes"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
)

// fit returns b resized to n bytes, repeating or truncating as needed.
func fit(b []byte, n int) []byte {
	out := make([]byte, n)
	if len(b) == 0 {
		return out
	}
	for i := range out {
		out[i] = b[i%len(b)]
	}
	return out
}

func FuzzEncryptDecrypt(f *testing.F) {
	f.Add([]byte("HELLO"))
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0x10}, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		sel, err := c.GetInt()
		if err != nil {
			return
		}
		keyMaterial, err := c.GetBytes()
		if err != nil {
			return
		}
		ivMaterial, err := c.GetBytes()
		if err != nil {
			return
		}
		plaintext, err := c.GetBytes()
		if err != nil {
			return
		}

		key := fit(keyMaterial, []int{16, 24, 32}[uint(sel)%3])
		iv := fit(ivMaterial, IVSize)

		ciphertext, err := Encrypt(key, iv, plaintext)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if len(ciphertext)%BlockSize != 0 || len(ciphertext) <= len(plaintext) {
			t.Fatalf("ciphertext length %d for plaintext length %d", len(ciphertext), len(plaintext))
		}

		got, err := Decrypt(key, iv, ciphertext)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round trip mismatch")
		}
	})
}

// FuzzDecrypt feeds arbitrary ciphertext to Decrypt. Any error must be one of the
// documented sentinels; it must never panic.
func FuzzDecrypt(f *testing.F) {
	f.Add(make([]byte, 16))
	f.Add([]byte("0123456789abcdef0123456789abcdef"))

	key := makeKey(24)
	iv := make([]byte, IVSize)
	f.Fuzz(func(t *testing.T, ciphertext []byte) {
		_, err := Decrypt(key, iv, ciphertext)
		if err != nil && !IsInvalidCiphertextLength(err) && !IsInvalidPadding(err) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func FuzzReadHeader(f *testing.F) {
	var buf bytes.Buffer
	_ = writeHeader(&buf, &header{version: formatVersion, algorithm: algAES256CBC, keyID: "k", iv: make([]byte, IVSize)})
	f.Add(buf.Bytes())
	f.Add([]byte("CB"))

	f.Fuzz(func(t *testing.T, data []byte) {
		h, rest, err := readHeader(data)
		if err != nil {
			if !IsInvalidFormat(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}
		if len(h.iv) != IVSize {
			t.Fatalf("iv length %d", len(h.iv))
		}
		if headerSize(h.keyID)+len(rest) != len(data) {
			t.Fatalf("header accounting mismatch")
		}
	})
}
