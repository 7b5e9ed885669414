package cli

import (
	repo "flight-quality-analyzer/internal/interface/repository"
	"flight-quality-analyzer/internal/usecase"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// newLogger keeps stderr quiet unless --verbose is set
func newLogger(opts *RootOptions) logger.Logger {
	if opts.Verbose {
		return logger.NewLoggerWithOptions("development", "debug")
	}
	return logger.NewLoggerWithOptions("production", "error")
}

// newAnalysisService wires the file-backed sources into an analysis service.
// Metrics go to a private registry; a one-off run has nothing to scrape them.
func newAnalysisService(opts *RootOptions, log logger.Logger) *usecase.AnalysisService {
	m := metrics.NewMetrics("fqa", prometheus.NewRegistry())

	flights := repo.NewCSVFlightRecordRepository(opts.CSVPath, log)
	zones := repo.NewFileTimezoneRepository(opts.Timezones)

	timezones := usecase.NewTimezoneProvider(zones, usecase.DefaultTimezoneCacheTTL, log, m)
	loader := usecase.NewFlightLoader(flights, timezones, usecase.BadRecordPolicy(opts.Policy), log, m)

	return usecase.NewAnalysisService(loader, usecase.AnalyzerConfig{
		Workers:         opts.Workers,
		ReportAllBreaks: opts.AllBreaks,
	}, log, m)
}
