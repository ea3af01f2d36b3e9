package ports

import "context"

// JobHandler executes queued jobs. Implementations must be idempotent:
// delivery is at-least-once and the sweeps re-enqueue missed work.
type JobHandler interface {
	DeleteFile(ctx context.Context, fileID string) error
	AbortMultipart(ctx context.Context, bucket, key, uploadID string) error
}

type JobConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
