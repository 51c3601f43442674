package services

import (
	"crypto/sha1"

	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// KeyDeriver derives content keys from an account email and a container flock
type KeyDeriver interface {
	DeriveKey(email, flock string) [types.KeySize]byte
	Diffuse(digest [sha1.Size]byte, modifier int) [sha1.Size]byte
}

// BlockDecrypter decrypts container bodies
type BlockDecrypter interface {
	Decrypt(key, iv, ciphertext []byte) ([]byte, error)
	StripPadding(data []byte) ([]byte, bool)
}

// ContainerDecrypter runs the full parse, derive and decrypt pipeline for one container
type ContainerDecrypter interface {
	DecryptContainer(email string, data []byte) (*DecryptedContainer, error)
	InspectContainer(data []byte) (*ContainerSummary, error)
}

var (
	_ KeyDeriver         = (*KeyDerivationService)(nil)
	_ BlockDecrypter     = (*DecryptionService)(nil)
	_ ContainerDecrypter = (*ContainerService)(nil)
)
