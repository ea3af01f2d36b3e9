package file

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"file-drop-api/internal/domain/errs"
)

type (
	File struct {
		UUID uuid.UUID

		StorageKey string
		FileName   string
		SizeBytes  uint64

		ExpiresAt            time.Time
		ExpireAfterNDownload int
		DownloadCount        int

		CreatedAt time.Time
	}
	Files []*File
)

// New builds a File record for a completed upload. Expiry before creation
// is rejected at construction; nothing else may produce such a record.
func New(key, name string, size uint64, createdAt, expiresAt time.Time, downloads int) (*File, error) {
	if expiresAt.Before(createdAt) {
		return nil, fmt.Errorf("%w: expiry %s is earlier than creation %s",
			errs.ErrValidation, expiresAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
	}
	if downloads <= 0 {
		return nil, fmt.Errorf("%w: expire_after_n_download must be positive", errs.ErrValidation)
	}

	return &File{
		StorageKey:           key,
		FileName:             name,
		SizeBytes:            size,
		ExpiresAt:            expiresAt,
		ExpireAfterNDownload: downloads,
		CreatedAt:            createdAt,
	}, nil
}

// IsExpired reports whether the file may no longer be served: either its
// expiry timestamp passed or its download quota is exhausted.
func (f *File) IsExpired(now time.Time) bool {
	return now.After(f.ExpiresAt) || f.DownloadCount >= f.ExpireAfterNDownload
}
