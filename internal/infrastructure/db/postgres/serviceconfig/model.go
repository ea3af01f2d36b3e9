package serviceconfig

import (
	"github.com/google/uuid"
)

type ServiceConfig struct {
	ID   uint64
	UUID uuid.UUID

	TotalStorageLimit *int64
	MaxFileSizeLimit  *int64

	DefaultExpirySeconds int64
	DefaultDownloads     int

	TimeOptions     []int64
	DownloadOptions []int64

	AllowedFileTypes []string
	BannedFileTypes  []string

	SiteDescription string
}
