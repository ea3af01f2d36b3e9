package ports

import (
	"context"
	"io"

	"file-drop-api/internal/domain/file"
)

// UploadRequest carries one incoming byte stream and its transport metadata.
// SizeHint <= 0 means the total length is unknown.
type UploadRequest struct {
	Body        io.Reader
	SizeHint    int64
	FileName    string
	ContentType string

	// zero values select the configured defaults
	ExpireAfterSeconds   int64
	ExpireAfterNDownload int
}

type UploadService interface {
	Upload(ctx context.Context, req UploadRequest) (*file.File, error)
}
