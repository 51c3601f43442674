package services

import (
	"fmt"

	"github.com/deploymenttheory/go-dmcrypt/internal/parsers/container"
	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// ContainerService composes header parsing, key derivation and decryption for a single container.
// It holds no per-file state and is safe for concurrent use.
type ContainerService struct {
	keys         KeyDeriver
	decrypter    BlockDecrypter
	stripPadding bool
}

// ContainerServiceOption configures a ContainerService
type ContainerServiceOption func(*ContainerService)

// WithPaddingRemoval strips well-formed PKCS#7 padding from decrypted output
func WithPaddingRemoval(enabled bool) ContainerServiceOption {
	return func(cs *ContainerService) {
		cs.stripPadding = enabled
	}
}

// WithKeyDeriver replaces the key deriver
func WithKeyDeriver(kd KeyDeriver) ContainerServiceOption {
	return func(cs *ContainerService) {
		cs.keys = kd
	}
}

// NewContainerService creates a new container service
func NewContainerService(opts ...ContainerServiceOption) *ContainerService {
	cs := &ContainerService{
		keys:      NewKeyDerivationService(),
		decrypter: NewDecryptionService(),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// DecryptContainer parses data, derives the key for email and the embedded flock, and decrypts the body
func (cs *ContainerService) DecryptContainer(email string, data []byte) (*DecryptedContainer, error) {
	header, err := container.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container header: %w", err)
	}

	key := cs.keys.DeriveKey(email, header.Flock)
	defer zeroBytes(key[:])

	plaintext, err := cs.decrypter.Decrypt(key[:], header.IV[:], header.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt container body: %w", err)
	}

	result := &DecryptedContainer{
		Flock:          header.Flock,
		HeaderSize:     header.HeaderSize(),
		CiphertextSize: len(header.Ciphertext),
		Plaintext:      plaintext,
	}

	if cs.stripPadding {
		result.Plaintext, result.PaddingRemoved = cs.decrypter.StripPadding(plaintext)
	}

	return result, nil
}

// InspectContainer parses the header of data and summarizes it
func (cs *ContainerService) InspectContainer(data []byte) (*ContainerSummary, error) {
	reader, err := container.NewContainerHeaderReader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container header: %w", err)
	}

	iv := reader.IV()
	reserved := reader.Reserved()

	return &ContainerSummary{
		Flock:          reader.Flock(),
		FlockLength:    reader.FlockLength(),
		IV:             iv[:],
		Reserved:       reserved[:],
		MetadataSize:   types.MetadataSize,
		HeaderSize:     reader.HeaderSize(),
		CiphertextSize: len(reader.Ciphertext()),
		BlockAligned:   reader.IsBlockAligned(),
	}, nil
}

// zeroBytes overwrites a byte slice with zeros
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
