package serviceconfig

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"file-drop-api/internal/domain/errs"
)

// ServiceConfig is the single, always-present configuration row. A nil limit
// means unlimited.
type ServiceConfig struct {
	UUID uuid.UUID

	TotalStorageLimit *uint64
	MaxFileSizeLimit  *uint64

	DefaultExpirySeconds int64
	DefaultDownloads     int

	TimeOptions     []int64
	DownloadOptions []int

	AllowedFileTypes []string
	BannedFileTypes  []string

	SiteDescription string
}

// Defaults returns the configuration an instance starts with at onboarding.
func Defaults() *ServiceConfig {
	week := int64((7 * 24 * time.Hour).Seconds())
	storage := uint64(10 << 30)
	perFile := uint64(100 << 20)

	return &ServiceConfig{
		TotalStorageLimit:    &storage,
		MaxFileSizeLimit:     &perFile,
		DefaultExpirySeconds: week,
		DefaultDownloads:     10,
		TimeOptions:          []int64{week},
		DownloadOptions:      []int{10},
		SiteDescription:      "Ephemeral file sharing",
	}
}

// Validate checks the cross-field invariants before any write reaches the
// record store: the defaults must be members of their option sets, and the
// allow/deny extension lists must be disjoint.
func (c *ServiceConfig) Validate() error {
	if !slices.Contains(c.DownloadOptions, c.DefaultDownloads) {
		return fmt.Errorf("%w: default_downloads %d is not one of the download options",
			errs.ErrValidation, c.DefaultDownloads)
	}
	if !slices.Contains(c.TimeOptions, c.DefaultExpirySeconds) {
		return fmt.Errorf("%w: default_expiry %ds is not one of the time options",
			errs.ErrValidation, c.DefaultExpirySeconds)
	}
	for _, ext := range c.AllowedFileTypes {
		if slices.Contains(c.BannedFileTypes, ext) {
			return fmt.Errorf("%w: extension %q is both allowed and banned", errs.ErrValidation, ext)
		}
	}
	return nil
}

// ExtensionAllowed applies the allow/deny lists to a (lowercase, dot-less)
// file extension. An empty allow list admits everything not banned.
func (c *ServiceConfig) ExtensionAllowed(ext string) bool {
	if slices.Contains(c.BannedFileTypes, ext) {
		return false
	}
	if len(c.AllowedFileTypes) == 0 {
		return true
	}
	return slices.Contains(c.AllowedFileTypes, ext)
}
