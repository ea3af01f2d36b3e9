package file

const (
	InsertFile = `
		INSERT INTO files (storage_key, file_name, size_bytes, expires_at, expire_after_n_download, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, uuid, storage_key, file_name, size_bytes, expires_at, expire_after_n_download, download_count, created_at
	`
	SelectFileByKey = `
		SELECT id, uuid, storage_key, file_name, size_bytes, expires_at, expire_after_n_download, download_count, created_at
		FROM files
		WHERE storage_key = $1
	`
	SelectFileByID = `
		SELECT id, uuid, storage_key, file_name, size_bytes, expires_at, expire_after_n_download, download_count, created_at
		FROM files
		WHERE uuid = $1
	`
	SelectAllFiles = `
		SELECT id, uuid, storage_key, file_name, size_bytes, expires_at, expire_after_n_download, download_count, created_at
		FROM files
		ORDER BY id
	`
	SelectActiveFiles = `
		SELECT id, uuid, storage_key, file_name, size_bytes, expires_at, expire_after_n_download, download_count, created_at
		FROM files
		WHERE download_count < expire_after_n_download AND expires_at >= $1
		ORDER BY id
	`
	SelectExpiredFileIDs = `
		SELECT uuid
		FROM files
		WHERE download_count >= expire_after_n_download OR expires_at < $1
	`
	IncrementDownloadCount = `
		UPDATE files
		SET download_count = download_count + 1
		WHERE uuid = $1
		RETURNING download_count
	`
	DeleteFileByID = `
		DELETE FROM files
		WHERE uuid = $1
	`
)
