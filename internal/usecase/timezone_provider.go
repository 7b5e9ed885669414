package usecase

import (
	"context"
	"strings"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	timezoneCacheKey = "airport_timezones"

	// DefaultTimezoneCacheTTL is how long a loaded airport timezone map stays fresh
	DefaultTimezoneCacheTTL = 15 * time.Minute
)

// TimezoneMap maps uppercase airport codes to IANA zone identifiers.
// A map is never modified after it is built, so it is safe to share across goroutines.
type TimezoneMap map[string]string

// NewTimezoneMap builds a map from repository entries, uppercasing codes.
// Entries without a code or zone name are ignored; later duplicates win.
func NewTimezoneMap(zones []entity.Timezone) TimezoneMap {
	m := make(TimezoneMap, len(zones))
	for _, tz := range zones {
		code := strings.ToUpper(strings.TrimSpace(tz.AirportCode))
		name := strings.TrimSpace(tz.TzName)
		if code == "" || name == "" {
			continue
		}
		m[code] = name
	}
	return m
}

// Lookup returns the zone for an airport code, case-insensitively
func (m TimezoneMap) Lookup(code string) (string, bool) {
	name, ok := m[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

// TimezoneProvider serves the airport timezone map from a time-boxed cache,
// loading it from the repository on first use and after expiry.
type TimezoneProvider struct {
	repo    repository.TimezoneRepository
	cache   *cache.Cache
	ttl     time.Duration
	group   singleflight.Group
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewTimezoneProvider creates a new timezone provider
func NewTimezoneProvider(
	repo repository.TimezoneRepository,
	ttl time.Duration,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *TimezoneProvider {
	if ttl <= 0 {
		ttl = DefaultTimezoneCacheTTL
	}
	return &TimezoneProvider{
		repo:    repo,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot returns the current timezone map. The returned map is stable for the
// caller even if the cache is refreshed afterwards. A failing source degrades to
// an empty map so that every airport is treated as already UTC.
func (p *TimezoneProvider) Snapshot(ctx context.Context) TimezoneMap {
	if cached, found := p.cache.Get(timezoneCacheKey); found {
		return cached.(TimezoneMap)
	}

	value, err, _ := p.group.Do(timezoneCacheKey, func() (interface{}, error) {
		// A caller that missed the cache may arrive just after another load finished
		if cached, found := p.cache.Get(timezoneCacheKey); found {
			return cached, nil
		}
		zones, err := p.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		m := NewTimezoneMap(zones)
		p.cache.Set(timezoneCacheKey, m, p.ttl)
		return m, nil
	})
	if err != nil {
		p.logger.Error("Failed to load airport timezones, treating all airports as UTC", "error", err)
		p.metrics.TimezoneMapLoads.WithLabelValues("error").Inc()
		p.metrics.ErrorsCount.WithLabelValues("timezone_load").Inc()
		return TimezoneMap{}
	}

	m := value.(TimezoneMap)
	p.logger.Info("Loaded airport timezones", "entries", len(m), "ttl", p.ttl.String())
	p.metrics.TimezoneMapLoads.WithLabelValues("ok").Inc()
	p.metrics.TimezoneMapSize.Set(float64(len(m)))
	return m
}

// Invalidate drops the cached map so the next snapshot reloads it
func (p *TimezoneProvider) Invalidate() {
	p.cache.Delete(timezoneCacheKey)
}
