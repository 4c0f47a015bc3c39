// Package config defines service configuration structures and loading hooks.
package config

import "runtime"

// Primary tier selectors.
const (
	TierNone     = "none"
	TierRemote   = "remote"
	TierOnDevice = "ondevice"
)

// Tier defaults. The adapters carry the same values for callers that build
// them without a Config.
const (
	DefaultRemoteEndpoint       = "https://api-inference.huggingface.co/models"
	DefaultRemoteModel          = "j-hartmann/emotion-english-distilroberta-base"
	DefaultOnDeviceModel        = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	DefaultOnDeviceModelDir     = "./models"
	DefaultStatisticalModelPath = "models/mood-classifier.bayes"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text, json or tint.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EntryQueueSize bounds the in-memory entry queue.
	EntryQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many entry ids are remembered for idempotency.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreSize bounds the analysis store; zero keeps everything.
	StoreSize int `koanf:"store_size"`

	// MaxRecentLimit caps GET /api/entries?limit.
	MaxRecentLimit int `koanf:"max_recent_limit"`

	// PrimaryTier picks the first cascade tier: none, remote or ondevice.
	PrimaryTier string `koanf:"primary_tier"`

	RemoteEndpoint  string  `koanf:"remote_endpoint"`
	RemoteModel     string  `koanf:"remote_model"`
	RemoteToken     string  `koanf:"remote_token"`
	RemoteRateLimit float64 `koanf:"remote_rate_limit"` // requests per second, 0 disables
	RemoteRateBurst int     `koanf:"remote_rate_burst"`

	OnDeviceModel    string `koanf:"ondevice_model"`
	OnDeviceModelDir string `koanf:"ondevice_model_dir"`

	// StatisticalModelPath locates the trained naive Bayes artifact.
	StatisticalModelPath string `koanf:"statistical_model_path"`

	// Warmup starts model loads at boot instead of on first request.
	Warmup bool `koanf:"warmup"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		EntryQueueSize:       10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           50_000,
		StoreSize:            100_000,
		MaxRecentLimit:       100,
		PrimaryTier:          TierNone,
		RemoteEndpoint:       DefaultRemoteEndpoint,
		RemoteModel:          DefaultRemoteModel,
		RemoteRateBurst:      1,
		OnDeviceModel:        DefaultOnDeviceModel,
		OnDeviceModelDir:     DefaultOnDeviceModelDir,
		StatisticalModelPath: DefaultStatisticalModelPath,
	}
}
