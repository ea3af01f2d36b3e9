package validator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// StorageKey extracts the object key from a wildcard route param. Keys
// contain slashes, so the route binds them with "*key" and gin keeps the
// leading separator.
func StorageKey(param string) (string, bool) {
	key := strings.TrimPrefix(param, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// ValidateUploadForm parses the optional expiry fields of the upload form.
// Empty values select the configured defaults; membership in the configured
// option sets is enforced downstream.
func ValidateUploadForm(expireAfter, expireAfterNDownload string) (int64, int, map[string]string) {
	errs := make(map[string]string)

	var expiry int64
	if s := strings.TrimSpace(expireAfter); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			errs["expire_after"] = "expire_after must be a positive number of seconds"
		} else {
			expiry = v
		}
	}

	var downloads int
	if s := strings.TrimSpace(expireAfterNDownload); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			errs["expire_after_n_download"] = "expire_after_n_download must be a positive number"
		} else {
			downloads = v
		}
	}

	if len(errs) == 0 {
		return expiry, downloads, nil
	}

	return expiry, downloads, errs
}
