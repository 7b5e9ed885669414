package usecase

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"
)

// MinimumTurnaround is the shortest allowed gap between an aircraft's arrival
// and its next departure.
const MinimumTurnaround = 45 * time.Minute

const timestampLayout = "2006-01-02 15:04:05"

// ErrUnknownCheck is returned for check identifiers the analyzer does not know
var ErrUnknownCheck = errors.New("unknown check")

var checkAliases = map[string]entity.CheckKind{
	"duplicates":            entity.CheckDuplicates,
	"checkduplicateflights": entity.CheckDuplicates,
	"overlaps":              entity.CheckOverlaps,
	"checkaircraftoverlaps": entity.CheckOverlaps,
	"sequence":              entity.CheckSequence,
	"checkairportsequence":  entity.CheckSequence,
	"route":                 entity.CheckRoute,
	"checkroutelogic":       entity.CheckRoute,
	"time":                  entity.CheckTime,
	"checktimelogic":        entity.CheckTime,
}

// ParseCheckKind resolves a check identifier, case-insensitively
func ParseCheckKind(name string) (entity.CheckKind, error) {
	kind, ok := checkAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	return kind, nil
}

// AnalyzerConfig tunes how the grouped checks run
type AnalyzerConfig struct {
	// Workers bounds how many aircraft groups are evaluated concurrently
	Workers int
	// ReportAllBreaks makes the overlap and sequence checks report every broken
	// pair in a chain instead of only the first one
	ReportAllBreaks bool
}

// FlightAnalyzer runs consistency checks over an enriched batch.
// Every check is a read-only pass; checks may run in any order or concurrently.
type FlightAnalyzer struct {
	records []entity.FlightRecord
	config  AnalyzerConfig
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewFlightAnalyzer creates an analyzer over enriched records
func NewFlightAnalyzer(
	records []entity.FlightRecord,
	config AnalyzerConfig,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FlightAnalyzer {
	return &FlightAnalyzer{
		records: slices.Clone(records),
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

// Records returns a copy of the analyzed records in input order
func (a *FlightAnalyzer) Records() []entity.FlightRecord {
	return slices.Clone(a.records)
}

// Run executes a single check and records its duration and finding count
func (a *FlightAnalyzer) Run(kind entity.CheckKind) ([]entity.Finding, error) {
	var check func() []entity.Finding
	switch kind {
	case entity.CheckDuplicates:
		check = a.CheckDuplicateFlights
	case entity.CheckOverlaps:
		check = a.CheckAircraftOverlap
	case entity.CheckSequence:
		check = a.CheckAirportSequence
	case entity.CheckRoute:
		check = a.CheckRouteLogic
	case entity.CheckTime:
		check = a.CheckTimeLogic
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, kind)
	}

	start := time.Now()
	findings := check()
	a.metrics.AnalysisDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	a.metrics.FindingsTotal.WithLabelValues(string(kind)).Add(float64(len(findings)))

	a.logger.Debug("Check completed",
		"check", kind,
		"records", len(a.records),
		"findings", len(findings))

	return findings, nil
}

// CheckTimeLogic flags every record that does not depart strictly before it arrives
func (a *FlightAnalyzer) CheckTimeLogic() []entity.Finding {
	var findings []entity.Finding
	for _, f := range a.records {
		if f.DepartureUTC.Before(f.ArrivalUTC) {
			continue
		}
		findings = append(findings, entity.Finding{
			Check:        entity.CheckTime,
			RecordIDs:    []int{f.ID},
			Registration: f.RegistrationNumber,
			FlightNumber: f.FlightNumber,
			Message: fmt.Sprintf("Time inconsistency: ID %d Flight %s departs %s %s (%s UTC) -> arrives %s %s (%s UTC)",
				f.ID, f.FlightNumber,
				f.DepartureAirport, f.DepartureLocal, formatUTC(f.DepartureUTC),
				f.ArrivalAirport, f.ArrivalLocal, formatUTC(f.ArrivalUTC)),
		})
	}
	return findings
}

// CheckAircraftOverlap reports, per aircraft, the first pair of consecutive
// flights with less than MinimumTurnaround between arrival and next departure.
// Groups are ordered by UTC departure before the walk.
func (a *FlightAnalyzer) CheckAircraftOverlap() []entity.Finding {
	groups := groupByRegistration(a.records)
	return evaluateGroups(groups, a.config.Workers, func(group []entity.FlightRecord) []entity.Finding {
		return walkChain(group, a.config.ReportAllBreaks,
			func(current, next entity.FlightRecord) bool {
				return current.ArrivalUTC.Add(MinimumTurnaround).After(next.DepartureUTC)
			},
			func(current, next entity.FlightRecord) entity.Finding {
				return entity.Finding{
					Check:        entity.CheckOverlaps,
					RecordIDs:    []int{current.ID, next.ID},
					Registration: current.RegistrationNumber,
					FlightNumber: current.FlightNumber,
					Message: fmt.Sprintf("Insufficient turnaround: registration %s flight ID %d (%s) arrives at %s at %s UTC, "+
						"flight ID %d (%s) departs %s at %s UTC, minimum turnaround is %d minutes",
						current.RegistrationNumber,
						current.ID, current.FlightNumber, current.ArrivalAirport, formatUTC(current.ArrivalUTC),
						next.ID, next.FlightNumber, next.DepartureAirport, formatUTC(next.DepartureUTC),
						int(MinimumTurnaround.Minutes())),
				}
			})
	})
}

// CheckRouteLogic flags records that depart from and arrive at the same airport
func (a *FlightAnalyzer) CheckRouteLogic() []entity.Finding {
	var findings []entity.Finding
	for _, f := range a.records {
		if !strings.EqualFold(f.DepartureAirport, f.ArrivalAirport) {
			continue
		}
		findings = append(findings, entity.Finding{
			Check:        entity.CheckRoute,
			RecordIDs:    []int{f.ID},
			Registration: f.RegistrationNumber,
			FlightNumber: f.FlightNumber,
			Message: fmt.Sprintf("Invalid route: ID %d Flight %s departs %s and arrives %s, the same airport",
				f.ID, f.FlightNumber, f.DepartureAirport, f.ArrivalAirport),
		})
	}
	return findings
}

// CheckAirportSequence reports, per aircraft, the first flight that does not
// depart from the airport its previous flight arrived at. Groups are ordered by
// UTC departure before the walk.
func (a *FlightAnalyzer) CheckAirportSequence() []entity.Finding {
	groups := groupByRegistration(a.records)
	return evaluateGroups(groups, a.config.Workers, func(group []entity.FlightRecord) []entity.Finding {
		return walkChain(group, a.config.ReportAllBreaks, breaksSequence,
			func(current, next entity.FlightRecord) entity.Finding {
				return entity.Finding{
					Check:        entity.CheckSequence,
					RecordIDs:    []int{current.ID, next.ID},
					Registration: current.RegistrationNumber,
					FlightNumber: next.FlightNumber,
					Message: fmt.Sprintf("Airport sequence mismatch: registration %s flight ID %d (%s) arrives at %s "+
						"but next flight ID %d (%s) departs from %s",
						current.RegistrationNumber,
						current.ID, current.FlightNumber, current.ArrivalAirport,
						next.ID, next.FlightNumber, next.DepartureAirport),
				}
			})
	})
}

type duplicateKey struct {
	flightNumber string
	departure    time.Time
	arrival      time.Time
	registration string
}

// CheckDuplicateFlights reports one finding per set of records sharing flight
// number, UTC departure, UTC arrival and registration. Sets are reported in the
// order their first record appears.
func (a *FlightAnalyzer) CheckDuplicateFlights() []entity.Finding {
	index := make(map[duplicateKey]int)
	var keys []duplicateKey
	var ids [][]int

	for _, f := range a.records {
		// UTC with the monotonic reading stripped so equal instants compare equal
		key := duplicateKey{
			flightNumber: f.FlightNumber,
			departure:    f.DepartureUTC.UTC().Round(0),
			arrival:      f.ArrivalUTC.UTC().Round(0),
			registration: f.RegistrationNumber,
		}
		i, ok := index[key]
		if !ok {
			i = len(keys)
			index[key] = i
			keys = append(keys, key)
			ids = append(ids, nil)
		}
		ids[i] = append(ids[i], f.ID)
	}

	var findings []entity.Finding
	for i, key := range keys {
		if len(ids[i]) < 2 {
			continue
		}
		findings = append(findings, entity.Finding{
			Check:        entity.CheckDuplicates,
			RecordIDs:    ids[i],
			Registration: key.registration,
			FlightNumber: key.flightNumber,
			Message: fmt.Sprintf("Duplicate flight: flight number %s departing %s UTC arriving %s UTC by registration %s (IDs %s)",
				key.flightNumber, formatUTC(key.departure), formatUTC(key.arrival), key.registration, joinIDs(ids[i])),
		})
	}
	return findings
}

// InconsistentChains returns every record whose departure airport does not
// continue its aircraft's previous arrival. Unlike CheckAirportSequence it
// reports all breaks and returns the records themselves.
func (a *FlightAnalyzer) InconsistentChains() []entity.FlightRecord {
	groups := groupByRegistration(a.records)
	return evaluateGroups(groups, a.config.Workers, func(group []entity.FlightRecord) []entity.FlightRecord {
		var broken []entity.FlightRecord
		for i := 1; i < len(group); i++ {
			if breaksSequence(group[i-1], group[i]) {
				broken = append(broken, group[i])
			}
		}
		return broken
	})
}

func breaksSequence(current, next entity.FlightRecord) bool {
	return !strings.EqualFold(current.ArrivalAirport, next.DepartureAirport)
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
