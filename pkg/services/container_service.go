package services

import (
	"fmt"
	"io"

	internal "github.com/deploymenttheory/go-dmcrypt/internal/services"
)

// containerService implements ContainerService on top of the internal pipeline
type containerService struct {
	pipeline *internal.ContainerService
	keys     *internal.KeyDerivationService
}

// NewContainerService creates a new container service
func NewContainerService(opts Options) ContainerService {
	keys := internal.NewKeyDerivationService()
	return &containerService{
		pipeline: internal.NewContainerService(
			internal.WithKeyDeriver(keys),
			internal.WithPaddingRemoval(opts.StripPadding),
		),
		keys: keys,
	}
}

// Decrypt parses data and decrypts its body with the key for email
func (cs *containerService) Decrypt(email string, data []byte) (*DecryptResult, error) {
	return cs.pipeline.DecryptContainer(email, data)
}

// DecryptReader reads a whole container from r and decrypts it
func (cs *containerService) DecryptReader(email string, r io.Reader) (*DecryptResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return cs.Decrypt(email, data)
}

// Inspect parses the header of data without decrypting it
func (cs *containerService) Inspect(data []byte) (*HeaderInfo, error) {
	return cs.pipeline.InspectContainer(data)
}

// DeriveKey returns the content key for an account email and a flock
func (cs *containerService) DeriveKey(email, flock string) []byte {
	key := cs.keys.DeriveKey(email, flock)
	return key[:]
}
