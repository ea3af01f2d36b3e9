package file

import (
	"github.com/dustin/go-humanize"

	"file-drop-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		UUID:                 fDomain.UUID,
		Key:                  fDomain.StorageKey,
		FileName:             fDomain.FileName,
		SizeBytes:            fDomain.SizeBytes,
		Size:                 humanize.IBytes(fDomain.SizeBytes),
		ExpiresAt:            fDomain.ExpiresAt,
		ExpireAfterNDownload: fDomain.ExpireAfterNDownload,
		DownloadCount:        fDomain.DownloadCount,
		CreatedAt:            fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fDomain file.Files) Files {
	fs := make(Files, len(fDomain))
	for idx, f := range fDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
