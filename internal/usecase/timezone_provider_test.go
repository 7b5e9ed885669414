package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewTimezoneMap(t *testing.T) {
	m := NewTimezoneMap([]entity.Timezone{
		{AirportCode: "hel", TzName: "Europe/Helsinki"},
		{AirportCode: " ARN ", TzName: " Europe/Stockholm "},
		{AirportCode: "", TzName: "Europe/Oslo"},
		{AirportCode: "OSL", TzName: ""},
	})

	assert.Len(t, m, 2)

	zone, ok := m.Lookup("Hel")
	assert.True(t, ok)
	assert.Equal(t, "Europe/Helsinki", zone)

	zone, ok = m.Lookup("arn")
	assert.True(t, ok)
	assert.Equal(t, "Europe/Stockholm", zone)

	_, ok = m.Lookup("OSL")
	assert.False(t, ok)
}

func TestTimezoneProvider_CachesSnapshot(t *testing.T) {
	repo := &fakeTimezoneRepository{zones: []entity.Timezone{{AirportCode: "HEL", TzName: "Europe/Helsinki"}}}
	m := newTestMetrics()
	p := NewTimezoneProvider(repo, time.Hour, logger.NewNopLogger(), m)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := p.Snapshot(context.Background()).Lookup("HEL")
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TimezoneMapSize))
}

func TestTimezoneProvider_Invalidate(t *testing.T) {
	repo := &fakeTimezoneRepository{zones: []entity.Timezone{{AirportCode: "HEL", TzName: "Europe/Helsinki"}}}
	p := NewTimezoneProvider(repo, time.Hour, logger.NewNopLogger(), newTestMetrics())

	p.Snapshot(context.Background())
	p.Invalidate()
	p.Snapshot(context.Background())

	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestTimezoneProvider_ExpiresAfterTTL(t *testing.T) {
	repo := &fakeTimezoneRepository{zones: []entity.Timezone{{AirportCode: "HEL", TzName: "Europe/Helsinki"}}}
	p := NewTimezoneProvider(repo, 20*time.Millisecond, logger.NewNopLogger(), newTestMetrics())

	p.Snapshot(context.Background())
	time.Sleep(50 * time.Millisecond)
	p.Snapshot(context.Background())

	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestTimezoneProvider_SourceFailureDegradesToEmptyMap(t *testing.T) {
	repo := &fakeTimezoneRepository{err: errors.New("connection refused")}
	m := newTestMetrics()
	p := NewTimezoneProvider(repo, time.Hour, logger.NewNopLogger(), m)

	snapshot := p.Snapshot(context.Background())
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TimezoneMapLoads.WithLabelValues("error")))

	// Failures are not cached
	p.Snapshot(context.Background())
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestTimezoneProvider_SnapshotIsStableAcrossRefresh(t *testing.T) {
	repo := &fakeTimezoneRepository{zones: []entity.Timezone{{AirportCode: "HEL", TzName: "Europe/Helsinki"}}}
	p := NewTimezoneProvider(repo, time.Hour, logger.NewNopLogger(), newTestMetrics())

	before := p.Snapshot(context.Background())
	repo.zones = []entity.Timezone{{AirportCode: "HEL", TzName: "Europe/Tallinn"}}
	p.Invalidate()
	after := p.Snapshot(context.Background())

	zone, _ := before.Lookup("HEL")
	assert.Equal(t, "Europe/Helsinki", zone)
	zone, _ = after.Lookup("HEL")
	assert.Equal(t, "Europe/Tallinn", zone)
}
