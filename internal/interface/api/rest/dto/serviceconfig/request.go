package serviceconfig

type Request struct {
	TotalStorageLimit *uint64 `json:"total_storage_limit"`
	MaxFileSizeLimit  *uint64 `json:"max_file_size_limit"`

	DefaultExpirySeconds int64 `json:"default_expiry_seconds"`
	DefaultDownloads     int   `json:"default_downloads"`

	TimeOptions     []int64 `json:"time_options"`
	DownloadOptions []int   `json:"download_options"`

	AllowedFileTypes []string `json:"allowed_file_types"`
	BannedFileTypes  []string `json:"banned_file_types"`

	SiteDescription string `json:"site_description"`
}
