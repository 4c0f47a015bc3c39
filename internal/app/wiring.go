package service

import (
	"github.com/okian/diarium/internal/adapters/ondevice"
	"github.com/okian/diarium/internal/adapters/remote"
	"github.com/okian/diarium/internal/config"
	"github.com/okian/diarium/internal/domain/cascade"
	"github.com/okian/diarium/internal/domain/keyword"
	"github.com/okian/diarium/pkg/logger"
)

// FromConfig maps configuration onto service options.
func FromConfig(cfg *config.Config, l logger.Logger) []Option {
	return []Option{
		WithLogger(l),
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.EntryQueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithStoreSize(cfg.StoreSize),
		WithStatisticalModelPath(cfg.StatisticalModelPath),
		WithWarmup(cfg.Warmup),
		WithPrimaryTier(PrimaryTier(cfg, l)),
	}
}

// PrimaryTier builds the configured first cascade tier, or nil for none.
func PrimaryTier(cfg *config.Config, l logger.Logger) cascade.Tier {
	switch cfg.PrimaryTier {
	case config.TierRemote:
		return remote.New(
			remote.WithEndpoint(cfg.RemoteEndpoint),
			remote.WithModel(cfg.RemoteModel),
			remote.WithToken(cfg.RemoteToken),
			remote.WithRateLimit(cfg.RemoteRateLimit, cfg.RemoteRateBurst),
			remote.WithLogger(l),
		)
	case config.TierOnDevice:
		return ondevice.New(keyword.New(),
			ondevice.WithModel(cfg.OnDeviceModel),
			ondevice.WithModelDir(cfg.OnDeviceModelDir),
			ondevice.WithLogger(l),
		)
	default:
		return nil
	}
}
