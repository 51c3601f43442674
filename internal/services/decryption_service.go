package services

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

// DecryptionService decrypts container bodies with AES-128 in CBC mode
type DecryptionService struct{}

// NewDecryptionService creates a new decryption service
func NewDecryptionService() *DecryptionService {
	return &DecryptionService{}
}

// Decrypt decrypts ciphertext with AES-128-CBC and returns the raw plaintext.
//
// No padding is removed. The inputs are never modified. Errors wrap
// types.ErrInvalidKeyLength, types.ErrInvalidIVLength,
// types.ErrInvalidCiphertextLength or types.ErrDecryptionFailed.
func (ds *DecryptionService) Decrypt(key, iv, ciphertext []byte) (plaintext []byte, err error) {
	if len(key) != types.KeySize {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidKeyLength, len(key))
	}

	if len(iv) != types.IVSize {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidIVLength, len(iv))
	}

	if len(ciphertext)%types.BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", types.ErrInvalidCiphertextLength, len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", types.ErrDecryptionFailed, err)
	}

	// crypto/cipher reports misuse by panicking
	defer func() {
		if r := recover(); r != nil {
			plaintext = nil
			err = fmt.Errorf("%w: %v", types.ErrDecryptionFailed, r)
		}
	}()

	plaintext = make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}

// StripPadding removes PKCS#7 padding when the trailing block carries
// well-formed padding, and returns data unchanged otherwise.
func (ds *DecryptionService) StripPadding(data []byte) ([]byte, bool) {
	length := len(data)
	if length == 0 || length%types.BlockSize != 0 {
		return data, false
	}

	padLength := int(data[length-1])
	if padLength == 0 || padLength > types.BlockSize {
		return data, false
	}

	for i := length - padLength; i < length; i++ {
		if data[i] != byte(padLength) {
			return data, false
		}
	}

	return data[:length-padLength], true
}
