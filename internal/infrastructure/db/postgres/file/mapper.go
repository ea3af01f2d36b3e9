package file

import (
	domain "file-drop-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID: model.UUID,

		StorageKey: model.StorageKey,
		FileName:   model.FileName,
		SizeBytes:  model.SizeBytes,

		ExpiresAt:            model.ExpiresAt,
		ExpireAfterNDownload: model.ExpireAfterNDownload,
		DownloadCount:        model.DownloadCount,

		CreatedAt: model.CreatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
