package decrypt

import (
	"strings"

	"github.com/deploymenttheory/go-dmcrypt/pkg/app"
)

// maxWorkers bounds the worker pool size
const maxWorkers = 256

// Validate validates a decryption request
func (r *Request) Validate() error {
	if len(r.Inputs) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "at least one input path is required", nil)
	}
	for _, in := range r.Inputs {
		if strings.TrimSpace(in) == "" {
			return app.NewError(app.ErrCodeInvalidInput, "input paths cannot be empty", nil)
		}
	}

	if strings.TrimSpace(r.Email) == "" {
		return app.NewError(app.ErrCodeInvalidInput, "email is required", nil)
	}
	if strings.ContainsAny(r.Email, "\r\n") {
		return app.NewError(app.ErrCodeInvalidInput, "email cannot contain line breaks", nil)
	}

	if r.OutputDir == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output directory is required", nil)
	}

	if r.Extension == "" {
		return app.NewError(app.ErrCodeInvalidInput, "container extension is required", nil)
	}

	if r.Workers < 1 || r.Workers > maxWorkers {
		return app.NewError(app.ErrCodeInvalidInput, "workers must be between 1 and 256", nil)
	}

	return nil
}
