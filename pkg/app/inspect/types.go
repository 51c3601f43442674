package inspect

// Request represents a header inspection request
type Request struct {
	Path string
}

// Response describes a container header
type Response struct {
	Path           string `json:"path" yaml:"path"`
	FileSize       int64  `json:"file_size" yaml:"file_size"`
	Flock          string `json:"flock" yaml:"flock"`
	FlockLength    uint8  `json:"flock_length" yaml:"flock_length"`
	IV             string `json:"iv" yaml:"iv"`
	Reserved       string `json:"reserved" yaml:"reserved"`
	MetadataSize   int    `json:"metadata_size" yaml:"metadata_size"`
	HeaderSize     int    `json:"header_size" yaml:"header_size"`
	CiphertextSize int    `json:"ciphertext_size" yaml:"ciphertext_size"`
	BlockAligned   bool   `json:"block_aligned" yaml:"block_aligned"`
}
