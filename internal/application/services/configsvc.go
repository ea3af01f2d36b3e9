package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"file-drop-api/internal/application/ports"
	domain "file-drop-api/internal/domain/serviceconfig"
)

// ConfigService wraps the singleton repository. Cross-field validation and
// the one-row guard both live at the repository boundary; the service only
// adds metrics.
type ConfigService struct {
	configRepository domain.Repository
	mCounter         *prometheus.CounterVec
}

func NewConfigService(
	configRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.ConfigService {
	return &ConfigService{
		configRepository: configRepository,
		mCounter:         mCounter,
	}
}

func (cs *ConfigService) Get(ctx context.Context) (*domain.ServiceConfig, error) {
	return cs.configRepository.Fetch(ctx)
}

func (cs *ConfigService) Onboard(ctx context.Context, cfg *domain.ServiceConfig) (*domain.ServiceConfig, error) {
	out, err := cs.configRepository.Create(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cs.mCounter.WithLabelValues("config_onboarded_total").Inc()

	return out, nil
}

func (cs *ConfigService) Update(ctx context.Context, cfg *domain.ServiceConfig) (*domain.ServiceConfig, error) {
	out, err := cs.configRepository.Update(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cs.mCounter.WithLabelValues("config_updated_total").Inc()

	return out, nil
}
