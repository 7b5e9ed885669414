package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // zone rules must not depend on the host's zoneinfo

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"
)

// TimezoneLookup resolves an airport code to an IANA zone identifier.
// Implementations must treat codes case-insensitively; a miss is not an error.
type TimezoneLookup interface {
	Lookup(code string) (string, bool)
}

// MalformedTimestampError is returned when a local timestamp cannot be parsed at all
type MalformedTimestampError struct {
	Value    string
	Location string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q at %q", e.Value, e.Location)
}

// NormalizedTime is the outcome of converting one local timestamp
type NormalizedTime struct {
	UTC    time.Time
	Status entity.NormalizationStatus
	// Err is set for malformed input, and for degraded results it carries the zone failure.
	Err error
}

// Accepted local timestamp layouts. Single-digit fields are accepted by every layout.
var localLayouts = []string{
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"2006-1-2T15:4:5",
	"2006-1-2T15:4",
	"2006/1/2 15:4:5",
	"2006/1/2 15:4",
	"1/2/2006 15:4:5",
	"1/2/2006 15:4",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
}

// Layouts that carry their own offset and therefore name an absolute instant
var absoluteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
}

// TimeNormalizer converts local airport timestamps into UTC instants
type TimeNormalizer struct {
	zones  TimezoneLookup
	now    func() time.Time
	logger logger.Logger

	mu        sync.Mutex
	locations map[string]*time.Location
}

// NewTimeNormalizer creates a normalizer over a stable timezone snapshot
func NewTimeNormalizer(zones TimezoneLookup, logger logger.Logger) *TimeNormalizer {
	return &TimeNormalizer{
		zones:     zones,
		now:       time.Now,
		logger:    logger,
		locations: make(map[string]*time.Location),
	}
}

// ConvertToUTC returns the UTC instant for a local timestamp at an airport.
// Only unparseable input yields an error; every other path returns a usable instant.
func (n *TimeNormalizer) ConvertToUTC(local, code string) (time.Time, error) {
	result := n.Normalize(local, code)
	if result.Status == entity.NormalizationMalformed {
		return time.Time{}, result.Err
	}
	return result.UTC, nil
}

// Normalize converts a local timestamp and reports how the instant was derived
func (n *TimeNormalizer) Normalize(local, code string) (result NormalizedTime) {
	if strings.TrimSpace(local) == "" {
		n.logger.Debug("Empty timestamp, substituting current time", "airport", code)
		return NormalizedTime{UTC: n.now().UTC(), Status: entity.NormalizationEmpty}
	}

	naive, absolute, err := parseLocalTimestamp(local)
	if err != nil {
		return NormalizedTime{
			Status: entity.NormalizationMalformed,
			Err:    &MalformedTimestampError{Value: local, Location: code},
		}
	}
	if absolute {
		return NormalizedTime{UTC: naive.UTC(), Status: entity.NormalizationConverted}
	}

	// Zone handling must never escape as a panic
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Timezone conversion panicked, using timestamp as UTC",
				"timestamp", local, "airport", code, "panic", r)
			result = NormalizedTime{
				UTC:    naive,
				Status: entity.NormalizationDegraded,
				Err:    fmt.Errorf("timezone conversion panic: %v", r),
			}
		}
	}()

	tzName, ok := n.lookupZone(code)
	if !ok {
		return NormalizedTime{UTC: naive, Status: entity.NormalizationUnresolved}
	}

	loc, err := n.location(tzName)
	if err != nil {
		n.logger.Warn("Unknown timezone for airport, using timestamp as UTC",
			"airport", code, "timezone", tzName, "error", err)
		return NormalizedTime{UTC: naive, Status: entity.NormalizationDegraded, Err: err}
	}

	utc, adjusted := localToUTC(naive, loc)
	if adjusted {
		n.logger.Debug("Local time falls in a DST gap, shifted forward one hour",
			"timestamp", local, "airport", code, "timezone", tzName)
		return NormalizedTime{UTC: utc, Status: entity.NormalizationGapAdjust}
	}
	return NormalizedTime{UTC: utc, Status: entity.NormalizationConverted}
}

func (n *TimeNormalizer) lookupZone(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || n.zones == nil {
		return "", false
	}
	return n.zones.Lookup(code)
}

func (n *TimeNormalizer) location(name string) (*time.Location, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if loc, ok := n.locations[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %s: %w", name, err)
	}
	n.locations[name] = loc
	return loc, nil
}

// parseLocalTimestamp returns the wall clock as a UTC-located value.
// absolute is true when the input carried its own offset.
func parseLocalTimestamp(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized timestamp format: %s", value)
}

// localToUTC places a wall clock in loc. Wall clocks inside a DST gap are moved
// forward one hour; wall clocks that occur twice resolve to the later instant.
func localToUTC(naive time.Time, loc *time.Location) (time.Time, bool) {
	t := wallClockIn(naive, loc)
	if !sameWallClock(t, naive) {
		return wallClockIn(naive.Add(time.Hour), loc).UTC(), true
	}

	// A repeated wall clock maps to the later instant, whatever the zone calls DST.
	later := t
	base := time.Date(naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), time.UTC)
	for _, near := range []time.Time{t.Add(-3 * time.Hour), t.Add(3 * time.Hour)} {
		_, offset := near.Zone()
		candidate := base.Add(-time.Duration(offset) * time.Second).In(loc)
		if candidate.After(later) && sameWallClock(candidate, naive) {
			later = candidate
		}
	}
	return later.UTC(), false
}

func wallClockIn(naive time.Time, loc *time.Location) time.Time {
	return time.Date(naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), loc)
}

func sameWallClock(t, naive time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := naive.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == naive.Hour() && t.Minute() == naive.Minute() && t.Second() == naive.Second()
}
