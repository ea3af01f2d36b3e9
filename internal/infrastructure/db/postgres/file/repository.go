package file

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/file"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.StorageKey, req.FileName, req.SizeBytes, req.ExpiresAt, req.ExpireAfterNDownload, req.CreatedAt,
	).Scan(
		&f.ID,
		&f.UUID,

		&f.StorageKey,
		&f.FileName,
		&f.SizeBytes,

		&f.ExpiresAt,
		&f.ExpireAfterNDownload,
		&f.DownloadCount,

		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchByKey(ctx context.Context, key string) (*domain.File, error) {
	return r.fetchOne(ctx, SelectFileByKey, key)
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.fetchOne(ctx, SelectFileByID, id)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*domain.File, error) {
	f := new(File)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&f.ID,
		&f.UUID,

		&f.StorageKey,
		&f.FileName,
		&f.SizeBytes,

		&f.ExpiresAt,
		&f.ExpireAfterNDownload,
		&f.DownloadCount,

		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: file", errs.ErrNotFound)
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchAll(ctx context.Context) (domain.Files, error) {
	return r.fetchMany(ctx, SelectAllFiles)
}

func (r *Repository) FetchActive(ctx context.Context, now time.Time) (domain.Files, error) {
	return r.fetchMany(ctx, SelectActiveFiles, now)
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (domain.Files, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,

			&f.StorageKey,
			&f.FileName,
			&f.SizeBytes,

			&f.ExpiresAt,
			&f.ExpireAfterNDownload,
			&f.DownloadCount,

			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchExpiredIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, SelectExpiredFileIDs, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *Repository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, IncrementDownloadCount, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: file", errs.ErrNotFound)
		}
		return 0, err
	}
	return count, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	// deleting an already-removed row is not an error: the sweep and the
	// queued deletion jobs may race on the same id
	_, err := r.db.Exec(ctx, DeleteFileByID, id)
	return err
}
