package usecase

import (
	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/pkg/logger"
)

// ReportOrder is the fixed order in which check results are concatenated
var ReportOrder = []entity.CheckKind{
	entity.CheckDuplicates,
	entity.CheckOverlaps,
	entity.CheckSequence,
	entity.CheckRoute,
	entity.CheckTime,
}

// Concat joins per-check results in ReportOrder. Checks missing from results
// contribute nothing; findings are not de-duplicated across checks.
func Concat(results map[entity.CheckKind][]entity.Finding) []entity.Finding {
	out := []entity.Finding{}
	for _, kind := range ReportOrder {
		out = append(out, results[kind]...)
	}
	return out
}

// FindingAggregator runs a selection of checks and builds the combined report
type FindingAggregator struct {
	logger logger.Logger
}

// NewFindingAggregator creates a new finding aggregator
func NewFindingAggregator(logger logger.Logger) *FindingAggregator {
	return &FindingAggregator{logger: logger}
}

// Report runs the selected checks, or all of them when none are given, and
// returns their findings in ReportOrder regardless of selection order.
func (g *FindingAggregator) Report(analyzer *FlightAnalyzer, kinds ...entity.CheckKind) ([]entity.Finding, error) {
	if len(kinds) == 0 {
		kinds = ReportOrder
	}

	results := make(map[entity.CheckKind][]entity.Finding, len(kinds))
	for _, kind := range kinds {
		if _, done := results[kind]; done {
			continue
		}
		findings, err := analyzer.Run(kind)
		if err != nil {
			return nil, err
		}
		results[kind] = findings
	}

	report := Concat(results)
	g.logger.Info("Consistency report built",
		"checks", selected(results),
		"findings", len(report))
	return report, nil
}

func selected(results map[entity.CheckKind][]entity.Finding) []entity.CheckKind {
	kinds := make([]entity.CheckKind, 0, len(results))
	for _, kind := range ReportOrder {
		if _, ok := results[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
