package ports

import (
	"context"

	"file-drop-api/pkg/rate"
)

// RateLimiter admits or rejects one event against every declared rate in
// order; the first rate that rejects short-circuits the rest and is returned
// so the caller can report it.
type RateLimiter interface {
	Allow(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error)
}
