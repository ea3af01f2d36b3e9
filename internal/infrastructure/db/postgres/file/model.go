package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID   uint64
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
