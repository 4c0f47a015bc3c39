package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/diarium/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
	percent             = 100
)

// ErrIncomplete is returned when some accepted entries were never analyzed.
var ErrIncomplete = errors.New("analyses incomplete")

// Run executes a complete probe against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now(), ByTier: map[string]int{}}
	log := logger.Get()

	log.Info(ctx, "starting diarium probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("entries", config.NumEntries),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and submit entries
	entries := generateEntries(ctx, config.NumEntries, stats)
	queued := submitEntries(ctx, config, client, entries, stats)

	// Step 3: Wait for analyses and compare moods
	if err := verifyAnalyses(ctx, config, client, queued, stats); err != nil {
		return stats, err
	}

	// Step 4: Save entries to file
	if config.OutputFile != "" {
		if err := saveEntries(config.OutputFile, entries); err != nil {
			log.Warn(ctx, "failed to save entries to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	status, _, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", status)
	}
	return nil
}

// verifyAnalyses polls until every queued entry has an analysis or the
// wait expires.
func verifyAnalyses(ctx context.Context, config *Config, client *httpClient, entries []Entry, stats *Stats) error {
	log := logger.Get()
	pending := make(map[string]Entry, len(entries))
	for _, e := range entries {
		pending[e.EntryID] = e
	}

	deadline := time.Now().Add(config.WaitFor)
	for len(pending) > 0 && time.Now().Before(deadline) {
		for id, e := range pending {
			a, ok, err := fetchAnalysis(ctx, client, id)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			delete(pending, id)
			stats.Analyzed++
			stats.ByTier[a.Mood.Tier]++
			if a.Mood.Primary.Mood == e.Expected {
				stats.Matched++
			} else if config.Verbose {
				log.Info(ctx, "mood mismatch",
					logger.String("entry", e.describe()),
					logger.String("got", a.Mood.Primary.Mood),
					logger.String("tier", a.Mood.Tier))
			}
		}
		if len(pending) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.PollInterval):
		}
	}

	if stats.Analyzed > 0 {
		stats.MatchRatio = float64(stats.Matched) / float64(stats.Analyzed)
	}
	if len(pending) > 0 {
		return fmt.Errorf("%w: %d entries without analysis", ErrIncomplete, len(pending))
	}
	return nil
}

// saveEntries writes the generated entries as a JSON array.
func saveEntries(filename string, entries []Entry) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	return os.WriteFile(filename, data, filePermission)
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	fields := []logger.Field{
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("throttled", stats.Throttled),
		logger.Int("failed", stats.Failed),
		logger.Int("analyzed", stats.Analyzed),
		logger.Float64("matchPercent", stats.MatchRatio*percent),
		logger.Float64("entriesPerSecond", perSecond),
		logger.Duration("duration", stats.Duration),
	}
	for tier, n := range stats.ByTier {
		fields = append(fields, logger.Int("tier."+tier, n))
	}
	logger.Get().Info(ctx, "final statistics", fields...)
}
