package serviceconfig

const (
	SelectConfig = `
		SELECT id, uuid, total_storage_limit, max_file_size_limit, default_expiry_seconds, default_downloads,
		       time_options, download_options, allowed_file_types, banned_file_types, site_description
		FROM service_config
		LIMIT 1
	`
	// InsertConfig only writes when the table is empty; zero returned rows
	// means a row already existed and the singleton guard fired.
	InsertConfig = `
		INSERT INTO service_config
		  (total_storage_limit, max_file_size_limit, default_expiry_seconds, default_downloads,
		   time_options, download_options, allowed_file_types, banned_file_types, site_description)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE NOT EXISTS (SELECT 1 FROM service_config)
		RETURNING
		  id, uuid, total_storage_limit, max_file_size_limit, default_expiry_seconds, default_downloads,
		  time_options, download_options, allowed_file_types, banned_file_types, site_description
	`
	UpdateConfig = `
		UPDATE service_config
		SET total_storage_limit = $1,
		    max_file_size_limit = $2,
		    default_expiry_seconds = $3,
		    default_downloads = $4,
		    time_options = $5,
		    download_options = $6,
		    allowed_file_types = $7,
		    banned_file_types = $8,
		    site_description = $9
		RETURNING
		  id, uuid, total_storage_limit, max_file_size_limit, default_expiry_seconds, default_downloads,
		  time_options, download_options, allowed_file_types, banned_file_types, site_description
	`
)
