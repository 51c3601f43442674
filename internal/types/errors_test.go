package types

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "invalid magic", err: ErrInvalidFormat, expected: KindFormat},
		{name: "truncated", err: ErrTruncated, expected: KindFormat},
		{name: "decode", err: ErrDecode, expected: KindFormat},
		{name: "wrapped truncated", err: fmt.Errorf("parse header: %w", ErrTruncated), expected: KindFormat},
		{name: "key length", err: ErrInvalidKeyLength, expected: KindKey},
		{name: "ciphertext length", err: ErrInvalidCiphertextLength, expected: KindCipher},
		{name: "iv length", err: ErrInvalidIVLength, expected: KindCipher},
		{name: "decryption failed", err: ErrDecryptionFailed, expected: KindCipher},
		{name: "file system", err: os.ErrNotExist, expected: KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorKind(tt.err))
		})
	}
}

func TestErrorSentinelsMatchTheirKind(t *testing.T) {
	assert.True(t, errors.Is(ErrTruncated, ErrFormat))
	assert.False(t, errors.Is(ErrTruncated, ErrCipher))
	assert.True(t, errors.Is(ErrInvalidKeyLength, ErrKey))
	assert.True(t, errors.Is(ErrDecryptionFailed, ErrCipher))
	assert.False(t, errors.Is(ErrDecryptionFailed, ErrFormat))
}

func TestMinContainerSize(t *testing.T) {
	assert.Equal(t, 312, MinContainerSize(0))
	assert.Equal(t, 319, MinContainerSize(7))
	assert.Equal(t, 567, MinContainerSize(255))

	h := &ContainerHeader{FlockLength: 6}
	assert.Equal(t, 318, h.HeaderSize())
}
