package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/diarium/internal/probe"
	"github.com/okian/diarium/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumEntries   = 1000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultWait         = 2 * time.Minute
	defaultPollInterval = 250 * time.Millisecond
	defaultDuplicateMod = 10
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEntries = flag.Int("entries", defaultNumEntries, "Number of diary entries to submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		wait       = flag.Duration("wait", defaultWait, "How long to wait for background analyses")
		dupMod     = flag.Int("dup-every", defaultDuplicateMod, "Resubmit every n-th entry (0 disables)")
		outputFile = flag.String("output", "", "Write generated entries to this JSON file")
		logFormat  = flag.String("log-format", logger.FormatTint, "Log format: text, json or tint")
		verbose    = flag.Bool("verbose", false, "Log every mood mismatch")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &probe.Config{
		BaseURL:      *baseURL,
		NumEntries:   *numEntries,
		Workers:      max(*workers, 1),
		Timeout:      *timeout,
		WaitFor:      *wait,
		PollInterval: defaultPollInterval,
		DuplicateMod: *dupMod,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
