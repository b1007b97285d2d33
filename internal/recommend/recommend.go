package recommend

import (
	"fmt"

	"dqlens/domain/quality"
)

// lowScoreThreshold is the global score below which a general review
// recommendation is emitted when no specific finding exists.
const lowScoreThreshold = 60.0

// actionByRule maps each rule id to its canned remediation guidance. The
// message on a recommendation is data-specific; the action is not.
var actionByRule = map[string]string{
	"R001_MISSING_VALUES":     "Impute the missing values or drop the affected rows",
	"R002_DUPLICATE_ROWS":     "Remove or merge the duplicate rows",
	"R003_TYPE_MISMATCH":      "Convert the column to its expected type",
	"R004_EMAIL_FORMAT":       "Clean and standardize the email addresses",
	"R005_PHONE_FORMAT":       "Clean and standardize the phone numbers",
	"R006_LOW_CARDINALITY":    "Check the integrity of the primary key",
	"R007_HIGH_NULL_RATE":     "Drop the column or impute it wholesale",
	"R008_CONSTANT_COLUMN":    "Drop the column, it carries no information",
	"R009_SEMANTIC_COHERENCE": "Fix the semantically inconsistent values",
	"R010_OUTLIERS_NUMERIC":   "Inspect, cap or remove the outlier values",
}

const defaultAction = "Review and fix manually"

// ActionFor returns the canned action for a rule id
func ActionFor(ruleID string) string {
	if action, ok := actionByRule[ruleID]; ok {
		return action
	}
	return defaultAction
}

// Generate walks the rule results and emits prioritized remediation items:
// critical results first (HIGH), then warnings (MEDIUM), dataset-level
// before columns and columns in dataset order, so ties keep encounter
// order. When nothing fired but the global score is low, a single LOW item
// urges a broader review. Callers may truncate the slice freely.
func Generate(eval quality.Evaluation, columnOrder []string, globalScore float64) []quality.Recommendation {
	var recs []quality.Recommendation

	collect := func(severity quality.Severity, priority quality.Priority) {
		for _, result := range eval.DatasetResults {
			if result.Severity == severity {
				recs = append(recs, quality.Recommendation{
					Priority: priority,
					Category: "Dataset",
					Message:  result.Message,
					Action:   ActionFor(result.RuleID),
				})
			}
		}
		for _, col := range columnOrder {
			for _, result := range eval.ColumnResults[col] {
				if result.Severity == severity {
					recs = append(recs, quality.Recommendation{
						Priority: priority,
						Category: fmt.Sprintf("Column %q", col),
						Message:  result.Message,
						Action:   ActionFor(result.RuleID),
					})
				}
			}
		}
	}

	collect(quality.SeverityCritical, quality.PriorityHigh)
	collect(quality.SeverityWarning, quality.PriorityMedium)

	if len(recs) == 0 && globalScore < lowScoreThreshold {
		recs = append(recs, quality.Recommendation{
			Priority: quality.PriorityLow,
			Category: "General",
			Message:  fmt.Sprintf("global quality score is low (%.1f/100)", globalScore),
			Action:   "Review the dataset broadly, no single rule explains the low score",
		})
	}
	return recs
}
