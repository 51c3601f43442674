package services

// DecryptedContainer is the outcome of decrypting a single container
type DecryptedContainer struct {
	Flock          string
	HeaderSize     int
	CiphertextSize int
	Plaintext      []byte
	PaddingRemoved bool
}

// ContainerSummary describes a container header without decrypting the body
type ContainerSummary struct {
	Flock          string
	FlockLength    uint8
	IV             []byte
	Reserved       []byte
	MetadataSize   int
	HeaderSize     int
	CiphertextSize int
	BlockAligned   bool
}
