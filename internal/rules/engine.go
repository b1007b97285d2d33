package rules

import (
	"log"
	"math"

	"dqlens/domain/core"
	"dqlens/domain/dataset"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
)

// Engine evaluates a loaded rule catalog against a dataset. The catalog is
// shared read-only; the engine itself keeps no per-run state, so one engine
// can serve concurrent analyses.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine bound to a catalog. Rules without an
// evaluation procedure are reported once here and skipped at run time.
func NewEngine(cat *catalog.Catalog) *Engine {
	for _, rule := range cat.Rules {
		if rule.Kind == catalog.KindUnimplemented {
			log.Printf("[rules] skipping rule %s: %v", rule.RuleID, core.ErrRuleUnimplemented)
		}
	}
	return &Engine{catalog: cat}
}

// EvaluateDataset runs every dataset-scoped rule once
func (e *Engine) EvaluateDataset(ds *dataset.Dataset) []quality.RuleResult {
	var results []quality.RuleResult
	for _, rule := range e.catalog.DatasetRules() {
		if result := e.executeDatasetRule(rule, ds); result != nil {
			results = append(results, *result)
		}
	}
	return results
}

// EvaluateColumn runs every applicable column-scoped rule against one
// column. A nil return from a check means the rule was not applicable for
// this column, not that it passed.
func (e *Engine) EvaluateColumn(col dataset.Column, totalRows int, profile quality.ColumnProfile) []quality.RuleResult {
	var results []quality.RuleResult
	for _, rule := range e.catalog.ColumnRules() {
		if !rule.AppliesToColumn(col.Name) {
			continue
		}
		if result := e.executeColumnRule(rule, col, totalRows, profile); result != nil {
			results = append(results, *result)
		}
	}
	return results
}

// Summarize counts outcomes across all results
func Summarize(results []quality.RuleResult) quality.EvaluationSummary {
	var s quality.EvaluationSummary
	for _, r := range results {
		s.TotalRulesExecuted++
		switch r.Severity {
		case quality.SeverityOK:
			s.RulesPassed++
		case quality.SeverityWarning:
			s.RulesWarning++
		case quality.SeverityCritical:
			s.RulesCritical++
		}
	}
	return s
}

func (e *Engine) executeDatasetRule(rule catalog.Rule, ds *dataset.Dataset) *quality.RuleResult {
	switch rule.Kind {
	case catalog.KindDuplicateRows:
		return checkDuplicateRows(rule, ds)
	}
	return nil
}

func (e *Engine) executeColumnRule(rule catalog.Rule, col dataset.Column, totalRows int, profile quality.ColumnProfile) *quality.RuleResult {
	switch rule.Kind {
	case catalog.KindMissingValues:
		return checkMissingValues(rule, col, totalRows)
	case catalog.KindTypeMismatch:
		return checkTypeMismatch(rule, col, profile)
	case catalog.KindPatternConformity:
		return checkPatternConformity(rule, col)
	case catalog.KindLowCardinality:
		return checkLowCardinality(rule, col, totalRows)
	case catalog.KindHighNullRate:
		return checkHighNullRate(rule, col, totalRows)
	case catalog.KindConstantColumn:
		return checkConstantColumn(rule, col)
	case catalog.KindNumericOutliers:
		return checkNumericOutliers(rule, col)
	}
	return nil
}

// classify applies the shared severity policy: the metric is compared to the
// rule's thresholds in the direction fixed by the rule's polarity. A missing
// bound never triggers its severity.
func classify(metric float64, rule catalog.Rule) quality.Severity {
	th := rule.Threshold
	switch rule.Polarity {
	case catalog.BadLow:
		if th.Critical != nil && metric < *th.Critical {
			return quality.SeverityCritical
		}
		if th.Warning != nil && metric < *th.Warning {
			return quality.SeverityWarning
		}
	default: // bad-high
		if th.Critical != nil && metric >= *th.Critical {
			return quality.SeverityCritical
		}
		if th.Warning != nil && metric >= *th.Warning {
			return quality.SeverityWarning
		}
	}
	return quality.SeverityOK
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 { return &v }
