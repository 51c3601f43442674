package services

import (
	"crypto/sha1"

	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

const (
	// diffusionWords is the number of 4-byte words a SHA-1 digest is split into
	diffusionWords = 5

	// diffusionWordSize is the width in bytes of a single diffusion word
	diffusionWordSize = sha1.Size / diffusionWords

	// emailDiffusionModifier and digestDiffusionModifier are the rotation offsets of the two diffusion rounds
	emailDiffusionModifier  = 2
	digestDiffusionModifier = 4
)

// KeyDerivationService derives per-file content keys from an account email and a container flock
type KeyDerivationService struct{}

// NewKeyDerivationService creates a new key derivation service
func NewKeyDerivationService() *KeyDerivationService {
	return &KeyDerivationService{}
}

// DeriveKey derives the 16-byte AES key for a container.
//
// Formula:
//
//	t1  = diffuse(sha1(email), 2)
//	t2  = diffuse(sha1(t1), 4)
//	key = sha1(t2[:16] || flock)[:16]
//
// The key is not cached; every call recomputes it.
func (kds *KeyDerivationService) DeriveKey(email, flock string) [types.KeySize]byte {
	h1 := sha1.Sum([]byte(email))
	t1 := kds.Diffuse(h1, emailDiffusionModifier)

	h2 := sha1.Sum(t1[:])
	t2 := kds.Diffuse(h2, digestDiffusionModifier)

	t3 := make([]byte, 0, types.KeySize+len(flock))
	t3 = append(t3, t2[:types.KeySize]...)
	t3 = append(t3, flock...)

	h3 := sha1.Sum(t3)

	var key [types.KeySize]byte
	copy(key[:], h3[:types.KeySize])

	return key
}

// Diffuse splits a digest into five 4-byte words W0..W4 and returns the
// concatenation of W[i] XOR W[(modifier+i) mod 5] for i in 0..4.
//
// All five words are read from the input before any output is produced.
func (kds *KeyDerivationService) Diffuse(digest [sha1.Size]byte, modifier int) [sha1.Size]byte {
	var out [sha1.Size]byte

	shift := ((modifier % diffusionWords) + diffusionWords) % diffusionWords
	for i := 0; i < diffusionWords; i++ {
		j := (shift + i) % diffusionWords
		for b := 0; b < diffusionWordSize; b++ {
			out[i*diffusionWordSize+b] = digest[i*diffusionWordSize+b] ^ digest[j*diffusionWordSize+b]
		}
	}

	return out
}
