// Package probe drives a running diarium service over HTTP: it submits
// generated diary entries, waits for their background analyses and checks
// the reported moods against the moods the entries were written for.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL      string        // Base URL of the service
	NumEntries   int           // Number of entries to generate
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	WaitFor      time.Duration // How long to wait for analyses
	PollInterval time.Duration // Delay between analysis polls
	DuplicateMod int           // Every n-th entry is submitted twice; 0 disables
	OutputFile   string        // Output file for generated entries
	Verbose      bool          // Log every mismatch
}

// Entry is a generated diary entry together with the mood it was written for.
type Entry struct {
	EntryID  string `json:"entry_id"`
	Text     string `json:"text"`
	Expected string `json:"expected_mood"`
}

// AckResponse is the reply to an entry submission.
type AckResponse struct {
	EntryID   string `json:"entry_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Analysis is the subset of a stored analysis the probe checks.
type Analysis struct {
	EntryID string `json:"entry_id"`
	Mood    struct {
		Primary struct {
			Mood       string  `json:"mood"`
			Confidence float64 `json:"confidence"`
		} `json:"primary"`
		Tier string `json:"tier"`
	} `json:"mood"`
}

// Stats holds probe statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int
	Duplicate  int
	Throttled  int
	Failed     int
	Analyzed   int
	Matched    int
	ByTier     map[string]int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	MatchRatio float64
}
