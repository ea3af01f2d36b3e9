package ports

import (
	"context"

	"github.com/google/uuid"

	"file-drop-api/internal/domain/file"
)

type FileService interface {
	// Download returns the stored object and its record. The download
	// counter is incremented before the body is handed to the caller; when
	// the increment pushes the record over its threshold a deletion job is
	// enqueued.
	Download(ctx context.Context, key string) (*Object, *file.File, error)

	// Information returns the record plus the authoritative stored size
	// from a metadata probe.
	Information(ctx context.Context, key string) (*file.File, int64, error)

	FindFiles(ctx context.Context) (file.Files, error)
	DeleteFileByID(ctx context.Context, id uuid.UUID) (*file.File, error)
}
