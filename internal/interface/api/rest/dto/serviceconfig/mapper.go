package serviceconfig

import (
	"github.com/dustin/go-humanize"

	"file-drop-api/internal/domain/serviceconfig"
)

func ToDomain(r Request) *serviceconfig.ServiceConfig {
	return &serviceconfig.ServiceConfig{
		TotalStorageLimit:    r.TotalStorageLimit,
		MaxFileSizeLimit:     r.MaxFileSizeLimit,
		DefaultExpirySeconds: r.DefaultExpirySeconds,
		DefaultDownloads:     r.DefaultDownloads,
		TimeOptions:          r.TimeOptions,
		DownloadOptions:      r.DownloadOptions,
		AllowedFileTypes:     r.AllowedFileTypes,
		BannedFileTypes:      r.BannedFileTypes,
		SiteDescription:      r.SiteDescription,
	}
}

func ToResponse(cDomain serviceconfig.ServiceConfig) Response {
	resp := Response{
		UUID:                 cDomain.UUID,
		TotalStorageLimit:    cDomain.TotalStorageLimit,
		MaxFileSizeLimit:     cDomain.MaxFileSizeLimit,
		DefaultExpirySeconds: cDomain.DefaultExpirySeconds,
		DefaultDownloads:     cDomain.DefaultDownloads,
		TimeOptions:          cDomain.TimeOptions,
		DownloadOptions:      cDomain.DownloadOptions,
		AllowedFileTypes:     cDomain.AllowedFileTypes,
		BannedFileTypes:      cDomain.BannedFileTypes,
		SiteDescription:      cDomain.SiteDescription,
	}

	if cDomain.TotalStorageLimit != nil {
		resp.TotalStorageLimitHuman = humanize.IBytes(*cDomain.TotalStorageLimit)
	}
	if cDomain.MaxFileSizeLimit != nil {
		resp.MaxFileSizeLimitHuman = humanize.IBytes(*cDomain.MaxFileSizeLimit)
	}

	return resp
}
