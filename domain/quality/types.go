package quality

// SemanticType classifies what a column is expected to hold or actually holds
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeDate        SemanticType = "date"
	TypeBoolean     SemanticType = "boolean"
	TypeCategorical SemanticType = "categorical"
	TypeIdentifier  SemanticType = "identifier"
	TypeName        SemanticType = "name"
	TypeText        SemanticType = "text"
	TypeTextLong    SemanticType = "text_long"
	// TypeEmpty marks a column with no present values at all
	TypeEmpty SemanticType = "empty"
)

// Severity is the outcome class of a rule evaluation
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Scope says whether a rule runs once per dataset or once per column
type Scope string

const (
	ScopeDataset Scope = "dataset"
	ScopeColumn  Scope = "column"
)

// Category is one of the four dimensions the global score is composed from
type Category string

const (
	CategoryCompleteness Category = "completeness"
	CategoryValidity     Category = "validity"
	CategoryUniqueness   Category = "uniqueness"
	CategoryConsistency  Category = "consistency"
)

// Categories returns the four categories in canonical order
func Categories() []Category {
	return []Category{CategoryCompleteness, CategoryValidity, CategoryUniqueness, CategoryConsistency}
}

// Priority ranks a recommendation
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank returns the sort rank of a priority (lower sorts first)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// NumericSummary carries basic statistics for columns whose content is numeric
type NumericSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// ColumnProfile is the inferencer's output for one column.
// ConformityRate is 100 exactly when ExpectedType == ActualType.
type ColumnProfile struct {
	Name           string          `json:"name"`
	ExpectedType   SemanticType    `json:"expected_type"`
	ActualType     SemanticType    `json:"actual_type"`
	ConformityRate float64         `json:"conformity_rate"`
	InvalidCount   int             `json:"invalid_count"`
	NullCount      int             `json:"null_count"`
	UniqueCount    int             `json:"unique_count"`
	SampleValues   []string        `json:"sample_values,omitempty"`
	Numeric        *NumericSummary `json:"numeric,omitempty"`
}

// RuleResult is one rule evaluated against the dataset or one column.
// Exactly one of Percentage, Conformity, Uniqueness is set for metric-based
// rules; all three stay nil for fixed-severity rules.
type RuleResult struct {
	RuleID     string   `json:"rule_id"`
	Scope      Scope    `json:"scope"`
	Column     string   `json:"column,omitempty"`
	Severity   Severity `json:"severity"`
	Passed     bool     `json:"passed"`
	Value      int      `json:"value"`
	Percentage *float64 `json:"percentage,omitempty"`
	Conformity *float64 `json:"conformity,omitempty"`
	Uniqueness *float64 `json:"uniqueness,omitempty"`
	Message    string   `json:"message"`
}

// EvaluationSummary counts rule outcomes for one run
type EvaluationSummary struct {
	TotalRulesExecuted int `json:"total_rules_executed"`
	RulesPassed        int `json:"rules_passed"`
	RulesWarning       int `json:"rules_warning"`
	RulesCritical      int `json:"rules_critical"`
}

// Evaluation is the full set of rule results for one run
type Evaluation struct {
	DatasetResults []RuleResult            `json:"dataset_results"`
	ColumnResults  map[string][]RuleResult `json:"column_results"`
	Summary        EvaluationSummary       `json:"summary"`
}

// All returns every result, dataset-level first, then columns in the given order
func (e Evaluation) All(columnOrder []string) []RuleResult {
	out := make([]RuleResult, 0, len(e.DatasetResults))
	out = append(out, e.DatasetResults...)
	for _, col := range columnOrder {
		out = append(out, e.ColumnResults[col]...)
	}
	return out
}

// CategoryScores maps each category to its 0-100 score
type CategoryScores map[Category]float64

// Scoring is the aggregator's output
type Scoring struct {
	GlobalScore    float64           `json:"global_score"`
	CategoryScores CategoryScores    `json:"category_scores"`
	Details        EvaluationSummary `json:"details"`
}

// Recommendation is one ranked remediation item
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// Report is the final, immutable output of one analysis. It carries no
// wall-clock or random fields so that identical inputs produce identical
// reports; persistence wraps it with an id and timestamp.
type Report struct {
	DatasetName     string           `json:"dataset_name"`
	Rows            int              `json:"rows"`
	Columns         int              `json:"columns"`
	GlobalScore     float64          `json:"global_score"`
	CategoryScores  CategoryScores   `json:"category_scores"`
	Evaluation      Evaluation       `json:"evaluation"`
	ColumnProfiles  []ColumnProfile  `json:"column_profiles"`
	Recommendations []Recommendation `json:"recommendations"`
}
