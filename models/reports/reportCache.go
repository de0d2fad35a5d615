package reports

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/factory_backend/config"
	"github.com/sirupsen/logrus"
)

const (
	dashboardCacheKey = "dashboard:v1"
	dashboardLockKey  = "lock:" + dashboardCacheKey
	dashboardLockTTL  = 30 * time.Second
)

// EnableCache turns on the redis cache of the combined payload.
// A non-positive ttl keeps the cache disabled.
func (d *Dashboard) EnableCache(ttl time.Duration) {
	d.cacheEnabled = ttl > 0
	d.cacheTTL = ttl
}

// GetCachedDashboardData serves the combined payload from redis when the cache is enabled.
// On a miss one caller recomputes under a redis lock while the others wait for the result.
// Cache errors are logged and never fail the call.
func (d *Dashboard) GetCachedDashboardData(ctx context.Context) (*DashboardData, error) {
	if !d.cacheEnabled {
		return d.GetDashboardData(ctx)
	}
	if data, ok := d.readCache(ctx); ok {
		return data, nil
	}

	locker := config.GetRedisLock()
	if locker == nil {
		return d.computeAndStore(ctx)
	}

	lock, err := locker.Obtain(ctx, dashboardLockKey, dashboardLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		d.logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": "GetCachedDashboardData",
		}).Warn("could not obtain dashboard lock; computing without cache")
		return d.GetDashboardData(ctx)
	} else if err != nil {
		config.LogError(d.logger, moduleName, "GetCachedDashboardData", "obtaining dashboard lock", nil, err)
		return d.GetDashboardData(ctx)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	// another holder may have filled the cache while we waited
	if data, ok := d.readCache(ctx); ok {
		return data, nil
	}
	return d.computeAndStore(ctx)
}

// InvalidateDashboardCache drops the cached payload.
func (d *Dashboard) InvalidateDashboardCache(ctx context.Context) error {
	return config.RemoveRedisKey(ctx, dashboardCacheKey)
}

func (d *Dashboard) readCache(ctx context.Context) (*DashboardData, bool) {
	var data DashboardData
	ok, err := config.GetRedisObject(ctx, dashboardCacheKey, &data)
	if err != nil {
		config.LogError(d.logger, moduleName, "readCache", "reading dashboard cache", dashboardCacheKey, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &data, true
}

func (d *Dashboard) computeAndStore(ctx context.Context) (*DashboardData, error) {
	data, err := d.GetDashboardData(ctx)
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisObject(ctx, dashboardCacheKey, data, d.cacheTTL); err != nil {
		config.LogError(d.logger, moduleName, "computeAndStore", "writing dashboard cache", dashboardCacheKey, err)
	}
	return data, nil
}
