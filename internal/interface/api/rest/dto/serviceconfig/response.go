package serviceconfig

import (
	"github.com/google/uuid"
)

type Response struct {
	UUID uuid.UUID `json:"uuid"`

	TotalStorageLimit *uint64 `json:"total_storage_limit"`
	MaxFileSizeLimit  *uint64 `json:"max_file_size_limit"`

	// humanized limits for the upload form; empty string means unlimited
	TotalStorageLimitHuman string `json:"total_storage_limit_human,omitempty"`
	MaxFileSizeLimitHuman  string `json:"max_file_size_limit_human,omitempty"`

	DefaultExpirySeconds int64 `json:"default_expiry_seconds"`
	DefaultDownloads     int   `json:"default_downloads"`

	TimeOptions     []int64 `json:"time_options"`
	DownloadOptions []int   `json:"download_options"`

	AllowedFileTypes []string `json:"allowed_file_types"`
	BannedFileTypes  []string `json:"banned_file_types"`

	SiteDescription string `json:"site_description"`
}
