package services

import (
	"errors"
	"io"

	internal "github.com/deploymenttheory/go-dmcrypt/internal/services"
	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// DecryptResult is the outcome of decrypting one container
type DecryptResult = internal.DecryptedContainer

// HeaderInfo describes a container header without its decrypted body
type HeaderInfo = internal.ContainerSummary

// Error categories. Every error returned by a ContainerService wraps exactly one of them.
var (
	ErrFormat = types.ErrFormat
	ErrKey    = types.ErrKey
	ErrCipher = types.ErrCipher
)

// ErrServiceNotInitialized is returned when a factory is used after Shutdown
var ErrServiceNotInitialized = errors.New("service factory not initialized")

// ContainerService decrypts and inspects .dm containers held in memory or read from a stream
type ContainerService interface {
	// Decrypt parses data and decrypts its body with the key for email
	Decrypt(email string, data []byte) (*DecryptResult, error)

	// DecryptReader reads a whole container from r and decrypts it
	DecryptReader(email string, r io.Reader) (*DecryptResult, error)

	// Inspect parses the header of data without decrypting it
	Inspect(data []byte) (*HeaderInfo, error)

	// DeriveKey returns the content key for an account email and a flock
	DeriveKey(email, flock string) []byte
}

// Options configures a ContainerService
type Options struct {
	// StripPadding removes well-formed PKCS#7 padding from decrypted bodies
	StripPadding bool
}
