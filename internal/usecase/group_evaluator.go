package usecase

import (
	"slices"

	"flight-quality-analyzer/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// groupByRegistration splits records into per-aircraft groups. Groups appear in the
// order their registration is first seen; each group is stably sorted by UTC
// departure, so records departing at the same instant keep their input order.
func groupByRegistration(records []entity.FlightRecord) [][]entity.FlightRecord {
	index := make(map[string]int)
	var groups [][]entity.FlightRecord

	for _, record := range records {
		i, ok := index[record.RegistrationNumber]
		if !ok {
			i = len(groups)
			index[record.RegistrationNumber] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], record)
	}

	for _, group := range groups {
		slices.SortStableFunc(group, func(a, b entity.FlightRecord) int {
			return a.DepartureUTC.Compare(b.DepartureUTC)
		})
	}
	return groups
}

// evaluateGroups applies fn to every group on at most workers goroutines and
// concatenates the results in group order, independent of scheduling.
func evaluateGroups[T any](groups [][]entity.FlightRecord, workers int, fn func([]entity.FlightRecord) []T) []T {
	results := make([][]T, len(groups))

	if workers <= 1 || len(groups) < 2 {
		for i, group := range groups {
			results[i] = fn(group)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, group := range groups {
			g.Go(func() error {
				results[i] = fn(group)
				return nil
			})
		}
		_ = g.Wait()
	}

	var out []T
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// walkChain visits consecutive pairs of a chronologically sorted group and
// collects a finding for every broken pair. Unless all is set, the walk stops
// at the first break.
func walkChain(
	group []entity.FlightRecord,
	all bool,
	broken func(current, next entity.FlightRecord) bool,
	describe func(current, next entity.FlightRecord) entity.Finding,
) []entity.Finding {
	var findings []entity.Finding
	for i := 0; i+1 < len(group); i++ {
		current, next := group[i], group[i+1]
		if !broken(current, next) {
			continue
		}
		findings = append(findings, describe(current, next))
		if !all {
			break
		}
	}
	return findings
}
