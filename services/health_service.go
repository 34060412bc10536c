package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rondreis/travel-office-backend/logger"
	"github.com/rondreis/travel-office-backend/pkg/travelcompositor"
	"github.com/rondreis/travel-office-backend/types"
	"go.uber.org/zap"
)

// HealthService reports the state of the service's dependencies: the Redis
// cache and the Travel Compositor upstream.
type HealthService struct {
	redisClient *redis.Client
	upstream    travelcompositor.Pinger
	version     string
	log         *zap.SugaredLogger
}

func NewHealthService(redisClient *redis.Client, upstream travelcompositor.Pinger, version string) *HealthService {
	return &HealthService{
		redisClient: redisClient,
		upstream:    upstream,
		version:     version,
		log:         logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	// Check Redis. The cache is optional, so a broken Redis degrades the
	// service rather than taking it down.
	redisStatus := h.checkRedis(ctx)
	components["redis"] = redisStatus
	if redisStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	// Check the upstream API. Without it only the normalize endpoint works.
	upstreamStatus := h.checkUpstream(ctx)
	components["travel_compositor"] = upstreamStatus
	if upstreamStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if h.redisClient == nil {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Cache disabled",
		}
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}

func (h *HealthService) checkUpstream(ctx context.Context) types.HealthComponent {
	if h.upstream == nil {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Upstream client not configured",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.upstream.Ping(ctx); err != nil {
		h.log.Errorw("Travel Compositor health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Travel Compositor unreachable",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
