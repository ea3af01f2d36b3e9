package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/file"
	"file-drop-api/internal/infrastructure/mq"
)

// Reconciler owns the periodic sweeps and the job handlers they feed. Both
// sweeps are idempotent and safe to run concurrently with themselves: every
// step treats "already gone" as success.
type Reconciler struct {
	storage         ports.ObjectStorage
	fileRepository  domain.Repository
	mq              ports.TaskQueue
	mCounter        *prometheus.CounterVec
	logger          *zap.Logger
	expiryEvery     time.Duration
	multipartEvery  time.Duration
	multipartMaxAge time.Duration
}

func NewReconciler(
	storage ports.ObjectStorage,
	fileRepository domain.Repository,
	taskQueue ports.TaskQueue,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	expiryEvery, multipartEvery, multipartMaxAge time.Duration,
) *Reconciler {
	return &Reconciler{
		storage:         storage,
		fileRepository:  fileRepository,
		mq:              taskQueue,
		mCounter:        mCounter,
		logger:          logger,
		expiryEvery:     expiryEvery,
		multipartEvery:  multipartEvery,
		multipartMaxAge: multipartMaxAge,
	}
}

// ExpirySweepWorker periodically enqueues deletion jobs for expired records.
func (r *Reconciler) ExpirySweepWorker(ctx context.Context) {
	r.logger.Info("starting expiry sweep worker", zap.Duration("interval", r.expiryEvery))
	defer r.logger.Info("expiry sweep worker gracefully stopped")

	t := time.NewTicker(r.expiryEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			n, err := r.SweepExpired(ctx)
			if err != nil {
				r.logger.Error("expiry sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.logger.Info("expiry sweep enqueued deletions", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

// StaleMultipartSweepWorker periodically aborts multipart uploads abandoned
// past the maximum age. This is the only mechanism that reclaims uploads
// whose orchestrator died before completing or aborting.
func (r *Reconciler) StaleMultipartSweepWorker(ctx context.Context) {
	r.logger.Info("starting stale multipart sweep worker",
		zap.Duration("interval", r.multipartEvery), zap.Duration("max_age", r.multipartMaxAge))
	defer r.logger.Info("stale multipart sweep worker gracefully stopped")

	t := time.NewTicker(r.multipartEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			n, err := r.SweepStaleMultipart(ctx)
			if err != nil {
				r.logger.Error("stale multipart sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.logger.Info("aborted stale multipart uploads", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Reconciler) SweepExpired(ctx context.Context) (int, error) {
	ids, err := r.fileRepository.FetchExpiredIDs(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		r.mq.GetInputChan() <- mq.Job{
			ID:     uuid.New(),
			TS:     time.Now().UTC(),
			Kind:   mq.KindDeleteFile,
			FileID: id.String(),
		}
	}

	return len(ids), nil
}

func (r *Reconciler) SweepStaleMultipart(ctx context.Context) (int, error) {
	uploads, err := r.storage.ListMultipartUploads(ctx)
	if err != nil {
		return 0, err
	}

	threshold := time.Now().UTC().Add(-r.multipartMaxAge)
	aborted := 0
	for _, u := range uploads {
		if u.Initiated.IsZero() || u.Initiated.After(threshold) {
			continue
		}
		if err := r.storage.AbortMultipartUpload(ctx, u.Key, u.UploadID); err != nil {
			// leave it for the next run
			r.logger.Error("stale multipart abort failed",
				zap.String("key", u.Key), zap.String("upload_id", u.UploadID), zap.Error(err))
			continue
		}
		aborted++
		r.mCounter.WithLabelValues("stale_multipart_aborted_total").Inc()
	}

	return aborted, nil
}

// DeleteFile is the deletion job handler. Object storage and the record
// store must converge: the object is removed first (absence is success),
// then the row. Re-running on the same id is a no-op after the first
// successful pass.
func (r *Reconciler) DeleteFile(ctx context.Context, fileID string) error {
	id, err := uuid.Parse(fileID)
	if err != nil {
		r.logger.Error("deletion job with malformed id", zap.String("file_id", fileID))
		return nil
	}

	rec, err := r.fileRepository.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}

	if err = r.storage.DeleteObject(ctx, rec.StorageKey); err != nil {
		return err
	}
	if err = r.fileRepository.DeleteFile(ctx, id); err != nil {
		return err
	}

	r.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

// AbortMultipart is the durable-compensation job handler.
func (r *Reconciler) AbortMultipart(ctx context.Context, bucket, key, uploadID string) error {
	if bucket != "" && bucket != r.storage.GetBucket() {
		r.logger.Warn("abort job for foreign bucket, skipping",
			zap.String("bucket", bucket), zap.String("key", key))
		return nil
	}
	return r.storage.AbortMultipartUpload(ctx, key, uploadID)
}
