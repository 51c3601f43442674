package inspect

import (
	"encoding/hex"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-dmcrypt/pkg/app"
	"github.com/deploymenttheory/go-dmcrypt/pkg/services"
)

// Handle parses the header of a single container without decrypting it
func Handle(ctx *app.Context, fs afero.Fs, req *Request) (*Response, error) {
	if req.Path == "" {
		return nil, app.NewError(app.ErrCodeInvalidInput, "container path is required", nil)
	}

	data, err := afero.ReadFile(fs, req.Path)
	if err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "failed to read container", err)
	}

	svc, err := ctx.ContainerService(services.Options{})
	if err != nil {
		return nil, err
	}

	summary, err := svc.Inspect(data)
	if err != nil {
		return nil, app.NewError(app.ErrCodeDecryption, "invalid container "+req.Path, err)
	}

	ctx.Log().WithField("path", req.Path).WithField("flock", summary.Flock).Debug("parsed header")

	return &Response{
		Path:           req.Path,
		FileSize:       int64(len(data)),
		Flock:          summary.Flock,
		FlockLength:    summary.FlockLength,
		IV:             hex.EncodeToString(summary.IV),
		Reserved:       hex.EncodeToString(summary.Reserved),
		MetadataSize:   summary.MetadataSize,
		HeaderSize:     summary.HeaderSize,
		CiphertextSize: summary.CiphertextSize,
		BlockAligned:   summary.BlockAligned,
	}, nil
}
