package serviceconfig

import (
	domain "file-drop-api/internal/domain/serviceconfig"
)

func fromDBModel(model *ServiceConfig) *domain.ServiceConfig {
	cfg := &domain.ServiceConfig{
		UUID: model.UUID,

		DefaultExpirySeconds: model.DefaultExpirySeconds,
		DefaultDownloads:     model.DefaultDownloads,

		TimeOptions: model.TimeOptions,

		AllowedFileTypes: model.AllowedFileTypes,
		BannedFileTypes:  model.BannedFileTypes,

		SiteDescription: model.SiteDescription,
	}

	if model.TotalStorageLimit != nil {
		v := uint64(*model.TotalStorageLimit)
		cfg.TotalStorageLimit = &v
	}
	if model.MaxFileSizeLimit != nil {
		v := uint64(*model.MaxFileSizeLimit)
		cfg.MaxFileSizeLimit = &v
	}

	cfg.DownloadOptions = make([]int, len(model.DownloadOptions))
	for i, d := range model.DownloadOptions {
		cfg.DownloadOptions[i] = int(d)
	}

	return cfg
}

func toDBArgs(cfg *domain.ServiceConfig) []any {
	var storageLimit, fileLimit *int64
	if cfg.TotalStorageLimit != nil {
		v := int64(*cfg.TotalStorageLimit)
		storageLimit = &v
	}
	if cfg.MaxFileSizeLimit != nil {
		v := int64(*cfg.MaxFileSizeLimit)
		fileLimit = &v
	}

	downloads := make([]int64, len(cfg.DownloadOptions))
	for i, d := range cfg.DownloadOptions {
		downloads[i] = int64(d)
	}

	return []any{
		storageLimit,
		fileLimit,
		cfg.DefaultExpirySeconds,
		cfg.DefaultDownloads,
		cfg.TimeOptions,
		downloads,
		cfg.AllowedFileTypes,
		cfg.BannedFileTypes,
		cfg.SiteDescription,
	}
}
