// File: internal/interfaces/container.go
package interfaces

import (
	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// ContainerHeaderReader provides methods for reading a parsed container header
type ContainerHeaderReader interface {
	// Flock returns the vendor identifier string embedded in the header
	Flock() string

	// FlockLength returns the declared length of the flock string in bytes
	FlockLength() uint8

	// IV returns the CBC initialization vector
	IV() [types.IVSize]byte

	// Reserved returns the undecoded reserved header bytes
	Reserved() [types.ReservedSize]byte

	// Metadata returns the opaque metadata region following the flock
	Metadata() []byte

	// Ciphertext returns the encrypted body following the IV
	Ciphertext() []byte

	// HeaderSize returns the number of bytes consumed by the header, IV included
	HeaderSize() int

	// IsBlockAligned reports whether the ciphertext length is a multiple of the AES block size
	IsBlockAligned() bool

	// Header returns the underlying parsed header
	Header() *types.ContainerHeader
}
