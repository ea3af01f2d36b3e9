package ports

import (
	"context"

	"file-drop-api/internal/domain/serviceconfig"
)

type ConfigService interface {
	Get(ctx context.Context) (*serviceconfig.ServiceConfig, error)
	Onboard(ctx context.Context, cfg *serviceconfig.ServiceConfig) (*serviceconfig.ServiceConfig, error)
	Update(ctx context.Context, cfg *serviceconfig.ServiceConfig) (*serviceconfig.ServiceConfig, error)
}
