package usecase

import (
	"context"
	"errors"
	"fmt"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"
)

// BadRecordPolicy decides what happens to a record whose timestamp cannot be parsed
type BadRecordPolicy string

const (
	SkipBadRecords   BadRecordPolicy = "skip"
	AbortOnBadRecord BadRecordPolicy = "abort"
)

// SkippedRecord describes a record dropped during enrichment
type SkippedRecord struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// Batch is a fully enriched set of flight records ready for analysis
type Batch struct {
	Records  []entity.FlightRecord `json:"records"`
	Skipped  []SkippedRecord       `json:"skipped,omitempty"`
	Degraded int                   `json:"degraded"`
}

// FlightLoader reads raw records from a source and enriches them with UTC instants
type FlightLoader struct {
	source    repository.FlightRecordRepository
	timezones *TimezoneProvider
	policy    BadRecordPolicy
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewFlightLoader creates a new flight loader
func NewFlightLoader(
	source repository.FlightRecordRepository,
	timezones *TimezoneProvider,
	policy BadRecordPolicy,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FlightLoader {
	if policy == "" {
		policy = SkipBadRecords
	}
	return &FlightLoader{
		source:    source,
		timezones: timezones,
		policy:    policy,
		logger:    logger,
		metrics:   metrics,
	}
}

// Load reads every record from the source and enriches it
func (l *FlightLoader) Load(ctx context.Context) (*Batch, error) {
	raw, err := l.source.FindAll(ctx)
	if err != nil {
		l.metrics.ErrorsCount.WithLabelValues("load_flights").Inc()
		return nil, fmt.Errorf("failed to read flight records: %w", err)
	}
	return l.Enrich(ctx, raw)
}

// Enrich converts the local timestamps of a pre-built collection. The input slice
// is not modified; the batch holds copies.
func (l *FlightLoader) Enrich(ctx context.Context, raw []entity.FlightRecord) (*Batch, error) {
	// One snapshot for the whole pass, so a cache refresh cannot split the batch
	normalizer := NewTimeNormalizer(l.timezones.Snapshot(ctx), l.logger)
	return enrichRecords(raw, normalizer, l.policy, l.logger, l.metrics)
}

func enrichRecords(
	raw []entity.FlightRecord,
	normalizer *TimeNormalizer,
	policy BadRecordPolicy,
	log logger.Logger,
	m *metrics.Metrics,
) (*Batch, error) {
	batch := &Batch{Records: make([]entity.FlightRecord, 0, len(raw))}

	for _, record := range raw {
		departure := normalizer.Normalize(record.DepartureLocal, record.DepartureAirport)
		arrival := normalizer.Normalize(record.ArrivalLocal, record.ArrivalAirport)
		m.Normalizations.WithLabelValues(string(departure.Status)).Inc()
		m.Normalizations.WithLabelValues(string(arrival.Status)).Inc()

		if err := errors.Join(malformed(departure), malformed(arrival)); err != nil {
			if policy == AbortOnBadRecord {
				m.ErrorsCount.WithLabelValues("enrich").Inc()
				return nil, fmt.Errorf("flight record %d: %w", record.ID, err)
			}
			log.Warn("Skipping flight record with unparseable timestamp",
				"id", record.ID, "flightNumber", record.FlightNumber, "error", err)
			m.RecordsSkipped.Inc()
			batch.Skipped = append(batch.Skipped, SkippedRecord{ID: record.ID, Reason: err.Error()})
			continue
		}

		if degraded(departure) || degraded(arrival) {
			batch.Degraded++
		}

		record.DepartureUTC = departure.UTC
		record.ArrivalUTC = arrival.UTC
		record.DepartureNormalization = departure.Status
		record.ArrivalNormalization = arrival.Status
		batch.Records = append(batch.Records, record)
	}

	m.RecordsLoaded.Add(float64(len(batch.Records)))
	log.Info("Flight records enriched",
		"loaded", len(batch.Records),
		"skipped", len(batch.Skipped),
		"degraded", batch.Degraded)

	return batch, nil
}

func malformed(n NormalizedTime) error {
	if n.Status == entity.NormalizationMalformed {
		return n.Err
	}
	return nil
}

// degraded reports results whose instant was fabricated or guessed
func degraded(n NormalizedTime) bool {
	return n.Status == entity.NormalizationEmpty || n.Status == entity.NormalizationDegraded
}
