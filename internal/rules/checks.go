package rules

import (
	"fmt"

	"dqlens/domain/dataset"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/inference"

	"gonum.org/v1/gonum/stat"
)

// outlierZScore is the |z| beyond which a numeric value counts as an outlier
const outlierZScore = 3.0

// minOutlierSample is the smallest numeric sample the outlier check accepts
const minOutlierSample = 10

// checkDuplicateRows counts rows identical to an earlier row across all
// columns. Ten equal rows yield nine duplicates.
func checkDuplicateRows(rule catalog.Rule, ds *dataset.Dataset) *quality.RuleResult {
	total := ds.RowCount()
	seen := make(map[string]struct{}, total)
	duplicates := 0
	for i := 0; i < total; i++ {
		key := ds.RowKey(i)
		if _, dup := seen[key]; dup {
			duplicates++
		} else {
			seen[key] = struct{}{}
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(duplicates) / float64(total) * 100
	}
	severity := classify(percentage, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeDataset,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      duplicates,
		Percentage: ptr(round2(percentage)),
		Message:    fmt.Sprintf("%d duplicate rows (%.1f%%)", duplicates, percentage),
	}
}

// checkMissingValues reports the absent-value rate. It still reports on a
// fully absent column; only sample-requiring checks skip those.
func checkMissingValues(rule catalog.Rule, col dataset.Column, totalRows int) *quality.RuleResult {
	missing := col.NullCount()
	percentage := 0.0
	if totalRows > 0 {
		percentage = float64(missing) / float64(totalRows) * 100
	}
	severity := classify(percentage, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      missing,
		Percentage: ptr(round2(percentage)),
		Message:    fmt.Sprintf("%d missing values (%.1f%%)", missing, percentage),
	}
}

// checkTypeMismatch turns the inferencer's conformity facts into a rule
// outcome. Columns with no content are not applicable.
func checkTypeMismatch(rule catalog.Rule, col dataset.Column, profile quality.ColumnProfile) *quality.RuleResult {
	if profile.ActualType == quality.TypeEmpty {
		return nil
	}
	conformity := profile.ConformityRate
	severity := classify(conformity, rule)
	message := fmt.Sprintf("type consistent (%s)", profile.ActualType)
	if profile.ExpectedType != profile.ActualType {
		message = fmt.Sprintf("expected %s, content is %s (conformity %.1f%%)",
			profile.ExpectedType, profile.ActualType, conformity)
	}
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      profile.InvalidCount,
		Conformity: ptr(round2(conformity)),
		Message:    message,
	}
}

// checkPatternConformity measures the share of present values matching the
// catalog-supplied pattern.
func checkPatternConformity(rule catalog.Rule, col dataset.Column) *quality.RuleResult {
	if rule.Matcher == nil {
		return nil
	}
	values := col.NonAbsent()
	if len(values) == 0 {
		return nil
	}
	valid := 0
	for _, v := range values {
		if rule.Matcher.MatchString(v) {
			valid++
		}
	}
	conformity := float64(valid) / float64(len(values)) * 100
	severity := classify(conformity, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      len(values) - valid,
		Conformity: ptr(round2(conformity)),
		Message:    fmt.Sprintf("%s conformity: %.1f%% (%d invalid)", ruleLabel(rule), conformity, len(values)-valid),
	}
}

// checkLowCardinality measures distinct-to-total uniqueness, a low value on
// an identifier-like column signalling integrity risk.
func checkLowCardinality(rule catalog.Rule, col dataset.Column, totalRows int) *quality.RuleResult {
	if len(col.NonAbsent()) == 0 {
		return nil
	}
	unique := col.UniqueCount()
	uniqueness := 0.0
	if totalRows > 0 {
		uniqueness = float64(unique) / float64(totalRows) * 100
	}
	severity := classify(uniqueness, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      unique,
		Uniqueness: ptr(round2(uniqueness)),
		Message:    fmt.Sprintf("uniqueness: %.1f%% (%d/%d)", uniqueness, unique, totalRows),
	}
}

// checkHighNullRate flags columns that are mostly empty
func checkHighNullRate(rule catalog.Rule, col dataset.Column, totalRows int) *quality.RuleResult {
	missing := col.NullCount()
	percentage := 0.0
	if totalRows > 0 {
		percentage = float64(missing) / float64(totalRows) * 100
	}
	severity := classify(percentage, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      missing,
		Percentage: ptr(round2(percentage)),
		Message:    fmt.Sprintf("column mostly empty: %.1f%%", percentage),
	}
}

// checkConstantColumn flags columns carrying at most one distinct value. A
// constant column is a waste, not an integrity emergency, so it never goes
// past warning. A fully absent column counts as constant (0 distinct
// values) so that emptying a column can never read as an improvement. With
// no rows at all there is nothing to call constant.
func checkConstantColumn(rule catalog.Rule, col dataset.Column) *quality.RuleResult {
	if len(col.Values) == 0 {
		return nil
	}
	unique := col.UniqueCount()
	severity := quality.SeverityOK
	if unique <= 1 {
		severity = quality.SeverityWarning
	}
	return &quality.RuleResult{
		RuleID:   rule.RuleID,
		Scope:    quality.ScopeColumn,
		Column:   col.Name,
		Severity: severity,
		Passed:   severity == quality.SeverityOK,
		Value:    unique,
		Message:  fmt.Sprintf("distinct values: %d", unique),
	}
}

// checkNumericOutliers flags values beyond outlierZScore standard
// deviations. Columns that are not predominantly numeric, or too small to
// estimate a spread, are not applicable.
func checkNumericOutliers(rule catalog.Rule, col dataset.Column) *quality.RuleResult {
	values := col.NonAbsent()
	if len(values) == 0 {
		return nil
	}
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if num, ok := inference.ParseNumeric(v); ok {
			data = append(data, num)
		}
	}
	if len(data) < minOutlierSample || float64(len(data))/float64(len(values)) < 0.7 {
		return nil
	}

	mean, std := stat.MeanStdDev(data, nil)
	outliers := 0
	if std > 0 {
		for _, num := range data {
			if z := (num - mean) / std; z > outlierZScore || z < -outlierZScore {
				outliers++
			}
		}
	}
	percentage := float64(outliers) / float64(len(data)) * 100
	severity := classify(percentage, rule)
	return &quality.RuleResult{
		RuleID:     rule.RuleID,
		Scope:      quality.ScopeColumn,
		Column:     col.Name,
		Severity:   severity,
		Passed:     severity == quality.SeverityOK,
		Value:      outliers,
		Percentage: ptr(round2(percentage)),
		Message:    fmt.Sprintf("%d numeric outliers (%.1f%%)", outliers, percentage),
	}
}

func ruleLabel(rule catalog.Rule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return rule.RuleID
}
