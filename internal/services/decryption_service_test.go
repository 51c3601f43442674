package services

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// encryptCBC is the inverse of Decrypt, used to build fixtures
func encryptCBC(t *testing.T, key, iv, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plaintext)
	return out
}

func TestDecrypt_NISTVectors(t *testing.T) {
	ds := NewDecryptionService()

	// NIST SP 800-38A, F.2.2 CBC-AES128.Decrypt
	key := mustDecodeHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustDecodeHex(t, "000102030405060708090a0b0c0d0e0f")
	ciphertext := mustDecodeHex(t, "7649abac8119b246cee98e9b12e9197d"+
		"5086cb9b507219ee95db113a917678b2"+
		"73bed6b8e3c1743b7116e69e22229516"+
		"3ff1caa1681fac09120eca307586e1a7")
	expected := mustDecodeHex(t, "6bc1bee22e409f96e93d7e117393172a"+
		"ae2d8a571e03ac9c9eb76fac45af8e51"+
		"30c81c46a35ce411e5fbc1191a0a52ef"+
		"f69f2445df4f9b17ad2b417be66c3710")

	plaintext, err := ds.Decrypt(key, iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, expected, plaintext)
}

func TestDecrypt_KnownContainerBody(t *testing.T) {
	ds := NewDecryptionService()

	key := mustDecodeHex(t, "fdd4bb46f69e54ef23dd739c7004c1f1")
	iv := make([]byte, 16)
	ciphertext := mustDecodeHex(t, "11c93ac5f695fe5b1dd803cff5299e21")

	plaintext, err := ds.Decrypt(key, iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("HELLOWORLD12345!"), plaintext)
}

func TestDecrypt_RoundTrip(t *testing.T) {
	ds := NewDecryptionService()

	key := bytes.Repeat([]byte{0x42}, 16)
	iv := bytes.Repeat([]byte{0x24}, 16)
	plaintext := bytes.Repeat([]byte("0123456789abcdef"), 8)

	ciphertext := encryptCBC(t, key, iv, plaintext)
	original := append([]byte(nil), ciphertext...)

	decrypted, err := ds.Decrypt(key, iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
	assert.Equal(t, original, ciphertext, "ciphertext must not be modified")
}

func TestDecrypt_EmptyCiphertext(t *testing.T) {
	ds := NewDecryptionService()

	plaintext, err := ds.Decrypt(make([]byte, 16), make([]byte, 16), nil)
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestDecrypt_KeepsPadding(t *testing.T) {
	ds := NewDecryptionService()

	key := bytes.Repeat([]byte{0x01}, 16)
	iv := make([]byte, 16)
	padded := append([]byte("twelve bytes"), 4, 4, 4, 4)

	plaintext, err := ds.Decrypt(key, iv, encryptCBC(t, key, iv, padded))
	require.NoError(t, err)
	assert.Equal(t, padded, plaintext)
}

func TestDecrypt_Errors(t *testing.T) {
	ds := NewDecryptionService()

	tests := []struct {
		name       string
		key        []byte
		iv         []byte
		ciphertext []byte
		expected   error
		kind       error
	}{
		{
			name:       "short key",
			key:        make([]byte, 15),
			iv:         make([]byte, 16),
			ciphertext: make([]byte, 16),
			expected:   types.ErrInvalidKeyLength,
			kind:       types.ErrKey,
		},
		{
			name:       "AES-256 key",
			key:        make([]byte, 32),
			iv:         make([]byte, 16),
			ciphertext: make([]byte, 16),
			expected:   types.ErrInvalidKeyLength,
			kind:       types.ErrKey,
		},
		{
			name:       "short iv",
			key:        make([]byte, 16),
			iv:         make([]byte, 8),
			ciphertext: make([]byte, 16),
			expected:   types.ErrInvalidIVLength,
			kind:       types.ErrCipher,
		},
		{
			name:       "misaligned ciphertext",
			key:        make([]byte, 16),
			iv:         make([]byte, 16),
			ciphertext: make([]byte, 17),
			expected:   types.ErrInvalidCiphertextLength,
			kind:       types.ErrCipher,
		},
		{
			name:       "partial block",
			key:        make([]byte, 16),
			iv:         make([]byte, 16),
			ciphertext: make([]byte, 5),
			expected:   types.ErrInvalidCiphertextLength,
			kind:       types.ErrCipher,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := ds.Decrypt(tt.key, tt.iv, tt.ciphertext)
			assert.Nil(t, plaintext)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestStripPadding(t *testing.T) {
	ds := NewDecryptionService()

	block := func(tail ...byte) []byte {
		b := bytes.Repeat([]byte{'x'}, 16-len(tail))
		return append(b, tail...)
	}

	tests := []struct {
		name     string
		data     []byte
		expected []byte
		stripped bool
	}{
		{name: "one byte", data: block(1), expected: bytes.Repeat([]byte{'x'}, 15), stripped: true},
		{name: "four bytes", data: block(4, 4, 4, 4), expected: bytes.Repeat([]byte{'x'}, 12), stripped: true},
		{name: "full block", data: bytes.Repeat([]byte{16}, 16), expected: []byte{}, stripped: true},
		{name: "zero pad byte", data: block(0), expected: block(0), stripped: false},
		{name: "inconsistent", data: block(3, 2, 3), expected: block(3, 2, 3), stripped: false},
		{name: "too large", data: block(17), expected: block(17), stripped: false},
		{name: "empty", data: nil, expected: nil, stripped: false},
		{name: "misaligned", data: []byte{1}, expected: []byte{1}, stripped: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := ds.StripPadding(tt.data)
			assert.Equal(t, tt.stripped, ok)
			assert.Equal(t, tt.expected, out)
		})
	}
}
