package main

import (
	"os"

	"selfplay-gen/internal/config"
	"selfplay-gen/internal/match"
)

// newWriters sets up progress and benchmark writers based on flags and env
// vars. It returns the writers and a cleanup function to close any
// resources.
func newWriters(cfg *config.Config, runID string, total int, printOnly, tui bool, logFile string) (match.ProgressWriter, match.BenchWriter, func(), error) {
	cleanup := func() {}

	base, benchW, err := baseWriters(cfg, runID, total, printOnly, tui)
	if err != nil {
		return nil, nil, nil, err
	}
	if tw, ok := base.(*match.TUIWriter); ok {
		cleanup = tw.Close
	}
	if logFile == "" {
		return base, benchW, cleanup, nil
	}

	fw, err := match.NewFileWriter(logFile, logFile+".bench")
	if err != nil {
		return nil, nil, nil, err
	}
	mw := match.NewMultiWriter(base, fw)
	prev := cleanup
	cleanup = func() {
		fw.Close()
		prev()
	}
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writer based on the tui and printOnly
// flags and the configured metrics endpoint.
func baseWriters(cfg *config.Config, runID string, total int, printOnly, tui bool) (match.ProgressWriter, match.BenchWriter, error) {
	if tui {
		w := match.NewTUIWriter(runID, total)
		return w, w, nil
	}

	endpoint := cfg.Metrics.Endpoint
	if env := os.Getenv("GREPTIMEDB_ENDPOINT"); env != "" {
		endpoint = env
	}
	if printOnly || endpoint == "" {
		w := &match.StdoutWriter{}
		return w, w, nil
	}
	w, err := match.NewGreptimeWriter(endpoint, cfg.Metrics.Database, cfg.Metrics.ProgressTable, cfg.Metrics.BenchTable)
	if err != nil {
		return nil, nil, err
	}
	return w, w, nil
}
