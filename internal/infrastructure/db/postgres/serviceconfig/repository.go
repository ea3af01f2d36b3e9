package serviceconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"file-drop-api/internal/domain/errs"
	domain "file-drop-api/internal/domain/serviceconfig"
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

func (r *Repository) Fetch(ctx context.Context) (*domain.ServiceConfig, error) {
	cfg, err := r.scanOne(r.db.QueryRow(ctx, SelectConfig))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNoConfig
		}
		return nil, err
	}
	return cfg, nil
}

func (r *Repository) Create(ctx context.Context, req *domain.ServiceConfig) (*domain.ServiceConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg, err := r.scanOne(r.db.QueryRow(ctx, InsertConfig, toDBArgs(req)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: config row already exists", errs.ErrSingletonViolation)
		}
		return nil, err
	}
	return cfg, nil
}

func (r *Repository) Update(ctx context.Context, req *domain.ServiceConfig) (*domain.ServiceConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg, err := r.scanOne(r.db.QueryRow(ctx, UpdateConfig, toDBArgs(req)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNoConfig
		}
		return nil, err
	}
	return cfg, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.ServiceConfig, error) {
	m := new(ServiceConfig)

	err := row.Scan(
		&m.ID,
		&m.UUID,

		&m.TotalStorageLimit,
		&m.MaxFileSizeLimit,

		&m.DefaultExpirySeconds,
		&m.DefaultDownloads,

		&m.TimeOptions,
		&m.DownloadOptions,

		&m.AllowedFileTypes,
		&m.BannedFileTypes,

		&m.SiteDescription,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(m), nil
}
