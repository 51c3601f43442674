package types

// Container layout
// A .dm container is a fixed-layout header followed by an AES-128-CBC encrypted body.
//
//	Offset                 Length        Field
//	0                      2             Magic (0x01 0x09)
//	2                      1             Flock length
//	3                      9             Reserved
//	12                     flock length  Flock (UTF-8)
//	12+flock               284           Metadata
//	12+flock+284           16            IV
//	12+flock+300           remainder     Ciphertext

const (
	// FlockLengthOffset is the offset of the single byte holding the flock length.
	FlockLengthOffset = 2

	// ReservedOffset is the offset of the reserved header bytes.
	ReservedOffset = 3

	// ReservedSize is the size of the reserved header bytes. They are not decoded.
	ReservedSize = 9

	// FlockOffset is the absolute offset of the flock string.
	FlockOffset = 12

	// MetadataSize is the size of the opaque metadata region following the flock.
	// It carries vendor configuration fields that play no part in decryption.
	MetadataSize = 284

	// IVSize is the size of the initialization vector stored after the metadata region.
	IVSize = 16

	// KeySize is the size of a derived content key (AES-128).
	KeySize = 16

	// BlockSize is the AES block size. Ciphertext length must be a multiple of it.
	BlockSize = 16

	// HeaderOverhead is the number of header bytes that follow the flock string.
	HeaderOverhead = MetadataSize + IVSize

	// ContainerExtension is the file extension used by encrypted containers.
	ContainerExtension = ".dm"
)

// ContainerMagic identifies a supported container. Any other value is rejected.
var ContainerMagic = [2]byte{0x01, 0x09}

// ContainerHeader is the parsed form of a container header.
type ContainerHeader struct {
	// The container magic. Always equal to ContainerMagic after a successful parse.
	Magic [2]byte

	// The length in bytes of the flock string.
	FlockLength uint8

	// Reserved header bytes at offsets 3 through 11. Kept undecoded.
	Reserved [ReservedSize]byte

	// The vendor-assigned flock identifier. Combined with the account email during key derivation.
	Flock string

	// The opaque metadata region. Aliases the parsed buffer.
	Metadata []byte

	// The CBC initialization vector.
	IV [IVSize]byte

	// The encrypted body. Aliases the parsed buffer and extends to its end.
	Ciphertext []byte
}

// HeaderSize returns the number of bytes occupied by the header, including the IV.
func (h *ContainerHeader) HeaderSize() int {
	return FlockOffset + int(h.FlockLength) + HeaderOverhead
}

// MinContainerSize returns the smallest buffer that can hold a header with the given flock length.
func MinContainerSize(flockLength uint8) int {
	return FlockOffset + int(flockLength) + HeaderOverhead
}
