package repository

import (
	"context"

	"flight-quality-analyzer/internal/domain/entity"
)

// FlightRecordRepository is a source of raw, not yet enriched, flight records
type FlightRecordRepository interface {
	FindAll(ctx context.Context) ([]entity.FlightRecord, error)
}
