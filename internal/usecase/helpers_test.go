package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func mustUTC(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

// enriched builds a record whose UTC instants are already set
func enriched(t *testing.T, id int, registration, flight, from, departs, to, arrives string) entity.FlightRecord {
	t.Helper()
	return entity.FlightRecord{
		ID:                 id,
		RegistrationNumber: registration,
		FlightNumber:       flight,
		DepartureAirport:   from,
		DepartureLocal:     departs,
		ArrivalAirport:     to,
		ArrivalLocal:       arrives,
		DepartureUTC:       mustUTC(t, departs),
		ArrivalUTC:         mustUTC(t, arrives),
	}
}

type fakeTimezoneRepository struct {
	zones []entity.Timezone
	err   error
	calls atomic.Int32
}

func (f *fakeTimezoneRepository) ListAll(ctx context.Context) ([]entity.Timezone, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.zones, nil
}

type fakeFlightRepository struct {
	records []entity.FlightRecord
	err     error
}

func (f *fakeFlightRepository) FindAll(ctx context.Context) ([]entity.FlightRecord, error) {
	return f.records, f.err
}
