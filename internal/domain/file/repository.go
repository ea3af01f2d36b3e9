package file

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateFile(ctx context.Context, req *File) (*File, error)
	FetchByKey(ctx context.Context, key string) (*File, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*File, error)
	FetchAll(ctx context.Context) (Files, error)

	// FetchActive returns records whose expiry predicate does not hold at now.
	FetchActive(ctx context.Context, now time.Time) (Files, error)
	// FetchExpiredIDs returns ids of records whose expiry predicate holds at now.
	FetchExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)

	// IncrementDownloadCount adds one to the counter and returns the new value.
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}
