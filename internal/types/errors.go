package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the parser, key deriver and decryptor
// wraps exactly one of these, so callers can branch with errors.Is.
var (
	ErrFormat = errors.New("format error")
	ErrKey    = errors.New("key error")
	ErrCipher = errors.New("cipher error")
)

// Format errors
var (
	ErrInvalidFormat = fmt.Errorf("%w: invalid container magic", ErrFormat)
	ErrTruncated     = fmt.Errorf("%w: container truncated", ErrFormat)
	ErrDecode        = fmt.Errorf("%w: flock is not valid UTF-8", ErrFormat)
)

// Key errors
var (
	ErrInvalidKeyLength = fmt.Errorf("%w: key must be %d bytes", ErrKey, KeySize)
)

// Cipher errors
var (
	ErrInvalidIVLength         = fmt.Errorf("%w: iv must be %d bytes", ErrCipher, IVSize)
	ErrInvalidCiphertextLength = fmt.Errorf("%w: ciphertext length is not a multiple of %d", ErrCipher, BlockSize)
	ErrDecryptionFailed        = fmt.Errorf("%w: decryption failed", ErrCipher)
)

// Error kind names as reported per file.
const (
	KindFormat = "format"
	KindKey    = "key"
	KindCipher = "cipher"
	KindIO     = "io"
)

// ErrorKind classifies err into one of the kind names. Errors that wrap none
// of the kind sentinels are treated as I/O failures. A nil error has no kind.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrKey):
		return KindKey
	case errors.Is(err, ErrCipher):
		return KindCipher
	default:
		return KindIO
	}
}
