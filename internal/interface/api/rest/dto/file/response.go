package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	UploadResponse struct {
		Key string `json:"key"`
	}

	File struct {
		UUID                 uuid.UUID `json:"uuid"`
		Key                  string    `json:"key"`
		FileName             string    `json:"file_name"`
		SizeBytes            uint64    `json:"size_bytes"`
		Size                 string    `json:"size"`
		ExpiresAt            time.Time `json:"expires_at"`
		ExpireAfterNDownload int       `json:"expire_after_n_download"`
		DownloadCount        int       `json:"download_count"`
		CreatedAt            time.Time `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
