package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/file"
)

// QuotaAccountant computes the live aggregate usage across active records.
// Each record is sized by a metadata probe against object storage rather than
// the locally cached size field: during an in-flight upload the object is the
// source of truth. The result is a best-effort read, not a transactional
// guarantee; concurrent uploads may race past the limit by their in-flight
// bytes.
type QuotaAccountant struct {
	storage        ports.ObjectStorage
	fileRepository domain.Repository
	logger         *zap.Logger
}

func NewQuotaAccountant(
	storage ports.ObjectStorage,
	fileRepository domain.Repository,
	logger *zap.Logger,
) *QuotaAccountant {
	return &QuotaAccountant{
		storage:        storage,
		fileRepository: fileRepository,
		logger:         logger,
	}
}

// Usage sums the stored size of every non-expired record. A record whose
// object cannot be probed contributes zero: one inconsistent row must not
// block every future upload.
func (qa *QuotaAccountant) Usage(ctx context.Context) (uint64, error) {
	active, err := qa.fileRepository.FetchActive(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, f := range active {
		size, err := qa.storage.HeadObject(ctx, f.StorageKey)
		if err != nil {
			if !errors.Is(err, errs.ErrNotFound) {
				qa.logger.Warn("quota probe failed, skipping record",
					zap.String("key", f.StorageKey), zap.Error(err))
			}
			continue
		}
		total += uint64(size)
	}

	return total, nil
}
