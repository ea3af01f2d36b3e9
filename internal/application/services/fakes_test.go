// fakes_test.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"file-drop-api/internal/application/ports"
	domain "file-drop-api/internal/domain/file"
	configdomain "file-drop-api/internal/domain/serviceconfig"
	"file-drop-api/internal/infrastructure/mq"
)

type FakeObjectStorage struct {
	CreateMultipartUploadFunc   func(ctx context.Context, key, contentType string) (string, error)
	UploadPartFunc              func(ctx context.Context, key, uploadID string, partNumber int32, body []byte) (string, error)
	CompleteMultipartUploadFunc func(ctx context.Context, key, uploadID string, parts []ports.CompletedPart) error
	AbortMultipartUploadFunc    func(ctx context.Context, key, uploadID string) error
	HeadObjectFunc              func(ctx context.Context, key string) (int64, error)
	GetObjectFunc               func(ctx context.Context, key string) (*ports.Object, error)
	DeleteObjectFunc            func(ctx context.Context, key string) error
	ListMultipartUploadsFunc    func(ctx context.Context) ([]ports.MultipartUpload, error)
}

func (f *FakeObjectStorage) CreateMultipartUpload(ctx context.Context, key, contentType string) (string, error) {
	if f.CreateMultipartUploadFunc == nil {
		return "", errors.New("not used")
	}
	return f.CreateMultipartUploadFunc(ctx, key, contentType)
}
func (f *FakeObjectStorage) UploadPart(ctx context.Context, key, uploadID string, partNumber int32, body []byte) (string, error) {
	if f.UploadPartFunc == nil {
		return "", errors.New("not used")
	}
	return f.UploadPartFunc(ctx, key, uploadID, partNumber, body)
}
func (f *FakeObjectStorage) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []ports.CompletedPart) error {
	if f.CompleteMultipartUploadFunc == nil {
		return errors.New("not used")
	}
	return f.CompleteMultipartUploadFunc(ctx, key, uploadID, parts)
}
func (f *FakeObjectStorage) AbortMultipartUpload(ctx context.Context, key, uploadID string) error {
	if f.AbortMultipartUploadFunc == nil {
		return errors.New("not used")
	}
	return f.AbortMultipartUploadFunc(ctx, key, uploadID)
}
func (f *FakeObjectStorage) HeadObject(ctx context.Context, key string) (int64, error) {
	if f.HeadObjectFunc == nil {
		return 0, errors.New("not used")
	}
	return f.HeadObjectFunc(ctx, key)
}
func (f *FakeObjectStorage) GetObject(ctx context.Context, key string) (*ports.Object, error) {
	if f.GetObjectFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetObjectFunc(ctx, key)
}
func (f *FakeObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if f.DeleteObjectFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteObjectFunc(ctx, key)
}
func (f *FakeObjectStorage) ListMultipartUploads(ctx context.Context) ([]ports.MultipartUpload, error) {
	if f.ListMultipartUploadsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListMultipartUploadsFunc(ctx)
}
func (f *FakeObjectStorage) GetBucket() string { return "test-bucket" }

type FakeFileRepository struct {
	CreateFileFunc             func(ctx context.Context, req *domain.File) (*domain.File, error)
	FetchByKeyFunc             func(ctx context.Context, key string) (*domain.File, error)
	FetchByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.File, error)
	FetchAllFunc               func(ctx context.Context) (domain.Files, error)
	FetchActiveFunc            func(ctx context.Context, now time.Time) (domain.Files, error)
	FetchExpiredIDsFunc        func(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	IncrementDownloadCountFunc func(ctx context.Context, id uuid.UUID) (int, error)
	DeleteFileFunc             func(ctx context.Context, id uuid.UUID) error
}

func (f *FakeFileRepository) CreateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	if f.CreateFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFileFunc(ctx, req)
}
func (f *FakeFileRepository) FetchByKey(ctx context.Context, key string) (*domain.File, error) {
	if f.FetchByKeyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByKeyFunc(ctx, key)
}
func (f *FakeFileRepository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	if f.FetchByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByIDFunc(ctx, id)
}
func (f *FakeFileRepository) FetchAll(ctx context.Context) (domain.Files, error) {
	if f.FetchAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAllFunc(ctx)
}
func (f *FakeFileRepository) FetchActive(ctx context.Context, now time.Time) (domain.Files, error) {
	if f.FetchActiveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchActiveFunc(ctx, now)
}
func (f *FakeFileRepository) FetchExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	if f.FetchExpiredIDsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchExpiredIDsFunc(ctx, now)
}
func (f *FakeFileRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error) {
	if f.IncrementDownloadCountFunc == nil {
		return 0, errors.New("not used")
	}
	return f.IncrementDownloadCountFunc(ctx, id)
}
func (f *FakeFileRepository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFileFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFileFunc(ctx, id)
}

type FakeConfigRepository struct {
	FetchFunc  func(ctx context.Context) (*configdomain.ServiceConfig, error)
	CreateFunc func(ctx context.Context, cfg *configdomain.ServiceConfig) (*configdomain.ServiceConfig, error)
	UpdateFunc func(ctx context.Context, cfg *configdomain.ServiceConfig) (*configdomain.ServiceConfig, error)
}

func (f *FakeConfigRepository) Fetch(ctx context.Context) (*configdomain.ServiceConfig, error) {
	if f.FetchFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchFunc(ctx)
}
func (f *FakeConfigRepository) Create(ctx context.Context, cfg *configdomain.ServiceConfig) (*configdomain.ServiceConfig, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, cfg)
}
func (f *FakeConfigRepository) Update(ctx context.Context, cfg *configdomain.ServiceConfig) (*configdomain.ServiceConfig, error) {
	if f.UpdateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateFunc(ctx, cfg)
}

// FakeTaskQueue buffers published jobs so tests can assert on them without a
// broker.
type FakeTaskQueue struct {
	jobs chan mq.Job
}

func NewFakeTaskQueue() *FakeTaskQueue {
	return &FakeTaskQueue{jobs: make(chan mq.Job, 64)}
}

func (f *FakeTaskQueue) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeTaskQueue) Init() error                                   { return nil }
func (f *FakeTaskQueue) PublisherWorker(ctx context.Context)           {}
func (f *FakeTaskQueue) GetInputChan() chan mq.Job                     { return f.jobs }
func (f *FakeTaskQueue) GetConn() *amqp091.Connection                  { return nil }

func (f *FakeTaskQueue) Drain() []mq.Job {
	var out []mq.Job
	for {
		select {
		case j := <-f.jobs:
			out = append(out, j)
		default:
			return out
		}
	}
}

// counters registered per test, never in the default registry
func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filedrop",
			Name:      "general_counters",
		},
		[]string{"result"})
}
