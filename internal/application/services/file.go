package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/file"
	"file-drop-api/internal/infrastructure/mq"
)

type FileService struct {
	storage        ports.ObjectStorage
	fileRepository domain.Repository
	mq             ports.TaskQueue
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewFileService(
	storage ports.ObjectStorage,
	fileRepository domain.Repository,
	taskQueue ports.TaskQueue,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileService {
	return &FileService{
		storage:        storage,
		fileRepository: fileRepository,
		mq:             taskQueue,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (fs *FileService) Download(ctx context.Context, key string) (*ports.Object, *domain.File, error) {
	rec, err := fs.fileRepository.FetchByKey(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if rec.IsExpired(time.Now().UTC()) {
		return nil, nil, errs.ErrFileExpired
	}

	obj, err := fs.storage.GetObject(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	count, err := fs.fileRepository.IncrementDownloadCount(ctx, rec.UUID)
	if err != nil {
		_ = obj.Body.Close()
		return nil, nil, err
	}
	rec.DownloadCount = count

	// last permitted download: reclaim the file once the response is served
	if count >= rec.ExpireAfterNDownload {
		fs.enqueueDelete(rec.UUID)
	}

	fs.mCounter.WithLabelValues("downloads_served_total").Inc()

	return obj, rec, nil
}

func (fs *FileService) Information(ctx context.Context, key string) (*domain.File, int64, error) {
	rec, err := fs.fileRepository.FetchByKey(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if rec.IsExpired(time.Now().UTC()) {
		return nil, 0, errs.ErrFileExpired
	}

	// the object, not the record, is authoritative for size
	size, err := fs.storage.HeadObject(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	return rec, size, nil
}

func (fs *FileService) FindFiles(ctx context.Context) (domain.Files, error) {
	return fs.fileRepository.FetchAll(ctx)
}

// DeleteFileByID enqueues an idempotent deletion job for an explicit admin
// removal and returns the record it targeted.
func (fs *FileService) DeleteFileByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	rec, err := fs.fileRepository.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fs.enqueueDelete(rec.UUID)

	return rec, nil
}

func (fs *FileService) enqueueDelete(id uuid.UUID) {
	fs.mq.GetInputChan() <- mq.Job{
		ID:     uuid.New(),
		TS:     time.Now().UTC(),
		Kind:   mq.KindDeleteFile,
		FileID: id.String(),
	}
}
