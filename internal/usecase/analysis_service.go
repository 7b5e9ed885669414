package usecase

import (
	"context"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/google/uuid"
)

// AnalysisRequest selects checks for one analysis pass
type AnalysisRequest struct {
	Checks []entity.CheckKind
	// ReportAllBreaks overrides the service default when non-nil
	ReportAllBreaks *bool
}

// AnalysisReport is the result of one analysis pass
type AnalysisReport struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Checks      []entity.CheckKind `json:"checks"`
	Records     int                `json:"records"`
	Skipped     []SkippedRecord    `json:"skipped,omitempty"`
	Degraded    int                `json:"degraded"`
	Findings    []entity.Finding   `json:"findings"`
}

// AnalysisService loads a fresh batch per request and runs checks over it
type AnalysisService struct {
	loader  *FlightLoader
	config  AnalyzerConfig
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	loader *FlightLoader,
	config AnalyzerConfig,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *AnalysisService {
	return &AnalysisService{
		loader:  loader,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

// Analyze loads the batch, runs the requested checks and returns the report
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisReport, error) {
	runID := uuid.New().String()
	log := s.logger.With("runID", runID)

	batch, err := s.loader.Load(ctx)
	if err != nil {
		log.Error("Failed to load flight batch", "error", err)
		return nil, err
	}

	config := s.config
	if req.ReportAllBreaks != nil {
		config.ReportAllBreaks = *req.ReportAllBreaks
	}

	checks := req.Checks
	if len(checks) == 0 {
		checks = ReportOrder
	}

	analyzer := NewFlightAnalyzer(batch.Records, config, log, s.metrics)
	findings, err := NewFindingAggregator(log).Report(analyzer, checks...)
	if err != nil {
		return nil, err
	}

	return &AnalysisReport{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Checks:      orderedChecks(checks),
		Records:     len(batch.Records),
		Skipped:     batch.Skipped,
		Degraded:    batch.Degraded,
		Findings:    findings,
	}, nil
}

// Flights returns the enriched batch without running any check
func (s *AnalysisService) Flights(ctx context.Context) (*Batch, error) {
	return s.loader.Load(ctx)
}

// InconsistentChains returns every record that breaks its aircraft's airport chain
func (s *AnalysisService) InconsistentChains(ctx context.Context) ([]entity.FlightRecord, error) {
	batch, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewFlightAnalyzer(batch.Records, s.config, s.logger, s.metrics).InconsistentChains(), nil
}

func orderedChecks(checks []entity.CheckKind) []entity.CheckKind {
	var out []entity.CheckKind
	for _, kind := range ReportOrder {
		for _, c := range checks {
			if c == kind {
				out = append(out, kind)
				break
			}
		}
	}
	return out
}
