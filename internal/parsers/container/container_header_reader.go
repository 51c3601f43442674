package container

import (
	"fmt"
	"unicode/utf8"

	"github.com/deploymenttheory/go-dmcrypt/internal/interfaces"
	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// containerHeaderReader implements the ContainerHeaderReader interface
type containerHeaderReader struct {
	header *types.ContainerHeader
}

// Ensure containerHeaderReader implements the ContainerHeaderReader interface
var _ interfaces.ContainerHeaderReader = (*containerHeaderReader)(nil)

// NewContainerHeaderReader creates a new ContainerHeaderReader from raw container data
func NewContainerHeaderReader(data []byte) (interfaces.ContainerHeaderReader, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &containerHeaderReader{header: header}, nil
}

// ParseHeader splits raw container bytes into the flock, the IV and the ciphertext.
//
// The returned Flock, Metadata and Ciphertext alias data; the IV is copied.
// Errors wrap types.ErrInvalidFormat, types.ErrTruncated or types.ErrDecode.
func ParseHeader(data []byte) (*types.ContainerHeader, error) {
	if len(data) < len(types.ContainerMagic) {
		return nil, fmt.Errorf("%w: need %d bytes for magic, got %d", types.ErrTruncated, len(types.ContainerMagic), len(data))
	}

	h := &types.ContainerHeader{}
	copy(h.Magic[:], data[0:2])
	if h.Magic != types.ContainerMagic {
		return nil, fmt.Errorf("%w: got 0x%02X%02X, want 0x%02X%02X", types.ErrInvalidFormat,
			h.Magic[0], h.Magic[1], types.ContainerMagic[0], types.ContainerMagic[1])
	}

	if len(data) <= types.FlockLengthOffset {
		return nil, fmt.Errorf("%w: missing flock length", types.ErrTruncated)
	}
	h.FlockLength = data[types.FlockLengthOffset]

	// Everything up to and including the IV must be present before any field is sliced out
	if need := types.MinContainerSize(h.FlockLength); len(data) < need {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", types.ErrTruncated, need, len(data))
	}

	copy(h.Reserved[:], data[types.ReservedOffset:types.ReservedOffset+types.ReservedSize])

	offset := types.FlockOffset
	flock := data[offset : offset+int(h.FlockLength)]
	if !utf8.Valid(flock) {
		return nil, types.ErrDecode
	}
	h.Flock = string(flock)
	offset += int(h.FlockLength)

	h.Metadata = data[offset : offset+types.MetadataSize]
	offset += types.MetadataSize

	copy(h.IV[:], data[offset:offset+types.IVSize])
	offset += types.IVSize

	h.Ciphertext = data[offset:]

	return h, nil
}

// Flock returns the vendor identifier string embedded in the header
func (chr *containerHeaderReader) Flock() string {
	return chr.header.Flock
}

// FlockLength returns the declared length of the flock string in bytes
func (chr *containerHeaderReader) FlockLength() uint8 {
	return chr.header.FlockLength
}

// IV returns the CBC initialization vector
func (chr *containerHeaderReader) IV() [types.IVSize]byte {
	return chr.header.IV
}

// Reserved returns the undecoded reserved header bytes
func (chr *containerHeaderReader) Reserved() [types.ReservedSize]byte {
	return chr.header.Reserved
}

// Metadata returns a copy of the opaque metadata region
func (chr *containerHeaderReader) Metadata() []byte {
	metadata := make([]byte, len(chr.header.Metadata))
	copy(metadata, chr.header.Metadata)
	return metadata
}

// Ciphertext returns the encrypted body following the IV
func (chr *containerHeaderReader) Ciphertext() []byte {
	return chr.header.Ciphertext
}

// HeaderSize returns the number of bytes consumed by the header, IV included
func (chr *containerHeaderReader) HeaderSize() int {
	return chr.header.HeaderSize()
}

// IsBlockAligned reports whether the ciphertext length is a multiple of the AES block size
func (chr *containerHeaderReader) IsBlockAligned() bool {
	return len(chr.header.Ciphertext)%types.BlockSize == 0
}

// Header returns the underlying parsed header
func (chr *containerHeaderReader) Header() *types.ContainerHeader {
	return chr.header
}
