package ports

import (
	"context"
	"io"
	"time"
)

type (
	// CompletedPart pairs a part number with the integrity tag returned by
	// the backend for that part.
	CompletedPart struct {
		PartNumber int32
		ETag       string
	}

	// MultipartUpload identifies one outstanding (never completed, never
	// aborted) multipart upload in the backend.
	MultipartUpload struct {
		Key       string
		UploadID  string
		Initiated time.Time
	}

	// Object is a readable stored object plus the metadata needed to serve it.
	Object struct {
		Body        io.ReadCloser
		ContentType string
		Size        int64
	}
)

type ObjectStorage interface {
	CreateMultipartUpload(ctx context.Context, key, contentType string) (uploadID string, err error)
	UploadPart(ctx context.Context, key, uploadID string, partNumber int32, body []byte) (etag string, err error)
	CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []CompletedPart) error
	AbortMultipartUpload(ctx context.Context, key, uploadID string) error

	// HeadObject returns the authoritative stored size. A missing object is
	// reported as errs.ErrNotFound.
	HeadObject(ctx context.Context, key string) (int64, error)
	GetObject(ctx context.Context, key string) (*Object, error)
	// DeleteObject treats an already-absent object as success.
	DeleteObject(ctx context.Context, key string) error

	ListMultipartUploads(ctx context.Context) ([]MultipartUpload, error)

	GetBucket() string
}
