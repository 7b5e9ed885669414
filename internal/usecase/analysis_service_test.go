package usecase

import (
	"context"
	"testing"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(records []entity.FlightRecord, config AnalyzerConfig) *AnalysisService {
	loader, _ := newTestLoader(records, SkipBadRecords)
	return NewAnalysisService(loader, config, logger.NewNopLogger(), newTestMetrics())
}

func serviceFixture() []entity.FlightRecord {
	return []entity.FlightRecord{
		rawRecord(1, "HEL", "2024-05-01 06:00:00", "ARN", "2024-05-01 06:10:00"),
		rawRecord(2, "ARN", "2024-05-01 06:20:00", "HEL", "2024-05-01 09:10:00"),
		rawRecord(3, "OUL", "2024-05-01 09:00:00", "HEL", "2024-05-01 13:00:00"),
		rawRecord(4, "HEL", "2024-05-01 13:10:00", "ARN", "2024-05-01 13:20:00"),
		rawRecord(5, "HEL", "broken", "ARN", "2024-05-01 15:00:00"),
	}
}

func TestAnalyze_DefaultRunsEveryCheck(t *testing.T) {
	service := newTestService(serviceFixture(), AnalyzerConfig{Workers: 2})

	report, err := service.Analyze(context.Background(), AnalysisRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, ReportOrder, report.Checks)
	assert.Equal(t, 4, report.Records)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 5, report.Skipped[0].ID)
	assert.WithinDuration(t, time.Now(), report.GeneratedAt, time.Minute)

	// overlap 1->2 (first break only), sequence 2->3
	require.Len(t, report.Findings, 2)
	assert.Equal(t, entity.CheckOverlaps, report.Findings[0].Check)
	assert.Equal(t, []int{1, 2}, report.Findings[0].RecordIDs)
	assert.Equal(t, entity.CheckSequence, report.Findings[1].Check)
	assert.Equal(t, []int{2, 3}, report.Findings[1].RecordIDs)
}

func TestAnalyze_RequestOverridesAllBreaks(t *testing.T) {
	service := newTestService(serviceFixture(), AnalyzerConfig{})

	allBreaks := true
	report, err := service.Analyze(context.Background(), AnalysisRequest{
		Checks:          []entity.CheckKind{entity.CheckOverlaps},
		ReportAllBreaks: &allBreaks,
	})
	require.NoError(t, err)

	assert.Equal(t, []entity.CheckKind{entity.CheckOverlaps}, report.Checks)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, []int{1, 2}, report.Findings[0].RecordIDs)
	assert.Equal(t, []int{3, 4}, report.Findings[1].RecordIDs)
}

func TestInconsistentChains(t *testing.T) {
	chains, err := newTestService(serviceFixture(), AnalyzerConfig{}).InconsistentChains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, 3, chains[0].ID)
}

func TestFlights(t *testing.T) {
	batch, err := newTestService(serviceFixture(), AnalyzerConfig{}).Flights(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch.Records, 4)
	assert.Len(t, batch.Skipped, 1)
}
