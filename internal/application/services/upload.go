package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/file"
	configdomain "file-drop-api/internal/domain/serviceconfig"
	"file-drop-api/internal/infrastructure/mq"
)

// Multipart protocol bounds. maxParts is the hard protocol ceiling; the chunk
// policy guarantees the part count stays under it for any known size.
const (
	maxParts     = 10_000
	minChunkSize = int64(5 << 20)
	maxChunkSize = int64(5 << 30)
	megabyte     = int64(1 << 20)
)

const (
	partRetryMax  = 3
	partRetryBase = 500 * time.Millisecond

	abortTimeout = 10 * time.Second
)

type UploadService struct {
	storage          ports.ObjectStorage
	fileRepository   domain.Repository
	configRepository configdomain.Repository
	quota            *QuotaAccountant
	mq               ports.TaskQueue
	mCounter         *prometheus.CounterVec
	logger           *zap.Logger
}

func NewUploadService(
	storage ports.ObjectStorage,
	fileRepository domain.Repository,
	configRepository configdomain.Repository,
	quota *QuotaAccountant,
	taskQueue ports.TaskQueue,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UploadService {
	return &UploadService{
		storage:          storage,
		fileRepository:   fileRepository,
		configRepository: configRepository,
		quota:            quota,
		mq:               taskQueue,
		mCounter:         mCounter,
		logger:           logger,
	}
}

// Upload streams the request body into object storage as a multipart upload
// and persists a record on success. On any terminal failure the multipart
// upload is compensated (aborted now, or by a queued abort task) so no
// storage liability is left behind.
func (us *UploadService) Upload(ctx context.Context, req ports.UploadRequest) (*domain.File, error) {
	cfg, err := us.configRepository.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(req.FileName)
	if !cfg.ExtensionAllowed(fileExtension(name)) {
		return nil, fmt.Errorf("%w: file type %q is not accepted", errs.ErrValidation, fileExtension(name))
	}

	expirySeconds, downloads, err := resolveExpiry(cfg, req.ExpireAfterSeconds, req.ExpireAfterNDownload)
	if err != nil {
		return nil, err
	}

	// the size hint only tunes the chunk size. It overstates the file (the
	// transport frames the body), so the per-file limit is enforced against
	// actual bytes in the stream loop.

	// preflight: no multipart upload is opened when the quota is already spent
	var usage uint64
	if cfg.TotalStorageLimit != nil {
		usage, err = us.quota.Usage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: quota computation: %v", errs.ErrUpstream, err)
		}
		if usage >= *cfg.TotalStorageLimit {
			return nil, fmt.Errorf("%w: aggregate storage limit reached", errs.ErrInsufficientCapacity)
		}
	}

	key := genStorageKey(name)
	uploadID, err := us.storage.CreateMultipartUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}

	size, parts, err := us.streamParts(ctx, req.Body, chunkSize(req.SizeHint), cfg, usage, key, uploadID)
	if err != nil {
		us.compensate(ctx, key, uploadID)
		return nil, err
	}

	if err = us.storage.CompleteMultipartUpload(ctx, key, uploadID, parts); err != nil {
		us.compensate(ctx, key, uploadID)
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}

	now := time.Now().UTC()
	rec, err := domain.New(key, name, size, now, now.Add(time.Duration(expirySeconds)*time.Second), downloads)
	if err != nil {
		return nil, err
	}

	out, err := us.fileRepository.CreateFile(ctx, rec)
	if err != nil {
		// the object is already durable; the record insert failing leaves an
		// orphan that manual GC reclaims. Known trade-off of the two-backend
		// commit.
		us.logger.Error("file record insert failed after completed upload",
			zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}

	// best-effort deletion trigger at expiry; the periodic sweep is the
	// reliability backstop
	us.mq.GetInputChan() <- mq.Job{
		ID:     uuid.New(),
		TS:     now,
		Kind:   mq.KindDeleteFile,
		RunAt:  out.ExpiresAt,
		FileID: out.UUID.String(),
	}

	us.mCounter.WithLabelValues("uploads_completed_total").Inc()

	return out, nil
}

// chunkSize picks the per-part read size: ceil(size/maxParts) rounded up to a
// whole megabyte, clamped to the protocol's part-size bounds. Unknown sizes
// use the minimum chunk.
func chunkSize(sizeHint int64) int64 {
	if sizeHint <= 0 {
		return minChunkSize
	}
	c := (sizeHint + maxParts - 1) / maxParts
	c = (c + megabyte - 1) / megabyte * megabyte
	return min(max(c, minChunkSize), maxChunkSize)
}

func resolveExpiry(cfg *configdomain.ServiceConfig, expirySeconds int64, downloads int) (int64, int, error) {
	if expirySeconds == 0 {
		expirySeconds = cfg.DefaultExpirySeconds
	}
	if downloads == 0 {
		downloads = cfg.DefaultDownloads
	}
	if !slices.Contains(cfg.TimeOptions, expirySeconds) {
		return 0, 0, fmt.Errorf("%w: expiry %ds is not one of the configured options", errs.ErrValidation, expirySeconds)
	}
	if !slices.Contains(cfg.DownloadOptions, downloads) {
		return 0, 0, fmt.Errorf("%w: download limit %d is not one of the configured options", errs.ErrValidation, downloads)
	}
	return expirySeconds, downloads, nil
}

// streamParts reads the body one chunk at a time and uploads each part
// sequentially, enforcing both numeric limits before a chunk is sent. A
// dropped client is detected between chunks; the in-flight part is allowed
// to finish.
func (us *UploadService) streamParts(
	ctx context.Context,
	body io.Reader,
	chunk int64,
	cfg *configdomain.ServiceConfig,
	usage uint64,
	key, uploadID string,
) (uint64, []ports.CompletedPart, error) {
	buf := make([]byte, chunk)

	var (
		sent  uint64
		parts []ports.CompletedPart
	)
	partNumber := int32(1)

	for {
		if err := ctx.Err(); err != nil {
			return sent, parts, fmt.Errorf("upload canceled: %w", err)
		}

		n, rerr := io.ReadFull(body, buf)
		if n > 0 {
			next := sent + uint64(n)
			if cfg.MaxFileSizeLimit != nil && next > *cfg.MaxFileSizeLimit {
				return sent, parts, fmt.Errorf("%w: file exceeds the per-file size limit", errs.ErrInsufficientCapacity)
			}
			if cfg.TotalStorageLimit != nil && usage+next > *cfg.TotalStorageLimit {
				return sent, parts, fmt.Errorf("%w: aggregate storage limit reached", errs.ErrInsufficientCapacity)
			}
			if partNumber > maxParts {
				return sent, parts, fmt.Errorf("%w: upload exceeds %d parts", errs.ErrValidation, maxParts)
			}

			etag, err := us.uploadPartWithRetry(ctx, key, uploadID, partNumber, buf[:n])
			if err != nil {
				return sent, parts, fmt.Errorf("%w: part %d: %v", errs.ErrUpstream, partNumber, err)
			}

			parts = append(parts, ports.CompletedPart{PartNumber: partNumber, ETag: etag})
			sent = next
			partNumber++
		}

		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			return sent, parts, nil
		}
		if rerr != nil {
			return sent, parts, fmt.Errorf("reading upload stream: %w", rerr)
		}
	}
}

// uploadPartWithRetry sends one part under the retry policy: bounded
// attempts with exponential backoff, and a response without an integrity tag
// counts as a transport failure.
func (us *UploadService) uploadPartWithRetry(ctx context.Context, key, uploadID string, partNumber int32, body []byte) (string, error) {
	var etag string

	backoff := retry.WithMaxRetries(partRetryMax, retry.NewExponential(partRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		tag, err := us.storage.UploadPart(ctx, key, uploadID, partNumber, body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if tag == "" {
			return retry.RetryableError(errors.New("response missing integrity tag"))
		}
		etag = tag
		return nil
	})
	if err != nil {
		return "", err
	}

	return etag, nil
}

// compensate reclaims a failed multipart upload. One synchronous abort is
// attempted without blocking on the (possibly dead) request context; when it
// fails, a durable abort job takes over, and the stale-upload sweep is the
// final backstop.
func (us *UploadService) compensate(ctx context.Context, key, uploadID string) {
	abortCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), abortTimeout)
	defer cancel()

	if err := us.storage.AbortMultipartUpload(abortCtx, key, uploadID); err == nil {
		us.mCounter.WithLabelValues("uploads_aborted_total").Inc()
		return
	} else {
		us.logger.Warn("synchronous abort failed, enqueueing abort task",
			zap.String("key", key), zap.String("upload_id", uploadID), zap.Error(err))
	}

	us.mq.GetInputChan() <- mq.Job{
		ID:       uuid.New(),
		TS:       time.Now().UTC(),
		Kind:     mq.KindAbortMultipart,
		Bucket:   us.storage.GetBucket(),
		Key:      key,
		UploadID: uploadID,
	}
	us.mCounter.WithLabelValues("uploads_abort_enqueued_total").Inc()
}
