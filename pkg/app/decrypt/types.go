package decrypt

import (
	"fmt"
	"time"
)

// Status values reported per file
const (
	StatusDecrypted = "decrypted"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Request represents a batch decryption request
type Request struct {
	// Files or directories to search for containers
	Inputs []string

	// Account email the containers were encrypted for
	Email string

	// Root directory decrypted files are written under
	OutputDir string

	// Discovery options
	Recursive bool
	Extension string

	// Processing options
	Workers      int
	Overwrite    bool
	StripPadding bool
}

// Response represents batch decryption results
type Response struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	Files     []FileResult  `json:"files" yaml:"files"`
	Total     int           `json:"total" yaml:"total"`
	Succeeded int           `json:"succeeded" yaml:"succeeded"`
	Failed    int           `json:"failed" yaml:"failed"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Cancelled int           `json:"cancelled" yaml:"cancelled"`
	Warnings  []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FileResult represents the outcome for a single container
type FileResult struct {
	Input     string        `json:"input" yaml:"input"`
	Output    string        `json:"output,omitempty" yaml:"output,omitempty"`
	Flock     string        `json:"flock,omitempty" yaml:"flock,omitempty"`
	Size      int64         `json:"size" yaml:"size"`
	Status    string        `json:"status" yaml:"status"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the file was decrypted and written
func (f *FileResult) Succeeded() bool {
	return f.Status == StatusDecrypted
}

// FormatSize returns human-readable plaintext size
func (f *FileResult) FormatSize() string {
	return formatBytes(f.Size)
}

// formatBytes formats byte count as human readable
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
