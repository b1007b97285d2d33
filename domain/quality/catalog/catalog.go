package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"dqlens/domain/core"
	"dqlens/domain/quality"

	_ "embed"
)

//go:embed catalog.json
var defaultCatalog []byte

// Kind enumerates the closed set of evaluation procedures. Unknown catalog
// ids bind to KindUnimplemented instead of falling through silently.
type Kind string

const (
	KindMissingValues     Kind = "missing_values"
	KindDuplicateRows     Kind = "duplicate_rows"
	KindTypeMismatch      Kind = "type_mismatch"
	KindPatternConformity Kind = "pattern_conformity"
	KindLowCardinality    Kind = "low_cardinality"
	KindHighNullRate      Kind = "high_null_rate"
	KindConstantColumn    Kind = "constant_column"
	KindNumericOutliers   Kind = "numeric_outliers"
	KindUnimplemented     Kind = "unimplemented"
)

// Polarity says which direction of a metric is bad. Bad-high metrics
// (missing %, duplicate %) cross thresholds upward; bad-low metrics
// (conformity %, uniqueness %) cross them downward.
type Polarity string

const (
	BadHigh Polarity = "bad_high"
	BadLow  Polarity = "bad_low"
)

// Threshold carries optional warning/critical cut-offs. A nil bound means
// the rule never reaches that severity through this threshold.
type Threshold struct {
	Warning  *float64 `json:"warning,omitempty"`
	Critical *float64 `json:"critical,omitempty"`
}

// Definition is one catalog entry as written in the document
type Definition struct {
	RuleID    string        `json:"rule_id"`
	Name      string        `json:"name,omitempty"`
	Scope     quality.Scope `json:"scope"`
	AppliesTo []string      `json:"applies_to,omitempty"`
	Threshold Threshold     `json:"threshold"`
	Pattern   string        `json:"pattern,omitempty"`
	Polarity  Polarity      `json:"polarity,omitempty"`
}

// Rule is a compiled catalog entry: the definition bound to its evaluation
// kind, with the pattern pre-compiled. Immutable once the catalog is loaded.
type Rule struct {
	Definition
	Kind    Kind
	Matcher *regexp.Regexp
}

// AppliesToColumn implements the keyword applicability filter: an empty
// keyword set applies everywhere, otherwise at least one keyword must be a
// substring of the lowercased column name.
func (r Rule) AppliesToColumn(columnName string) bool {
	if r.Scope != quality.ScopeColumn {
		return false
	}
	if len(r.AppliesTo) == 0 {
		return true
	}
	lower := strings.ToLower(columnName)
	for _, keyword := range r.AppliesTo {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// CategoryMeta is informational catalog metadata for one score category
type CategoryMeta struct {
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
}

// Catalog is the immutable, pre-loaded rule set shared read-only by all
// evaluations in a session.
type Catalog struct {
	Version    string                  `json:"version"`
	Categories map[string]CategoryMeta `json:"categories"`
	Rules      []Rule                  `json:"-"`
}

type catalogDocument struct {
	Version    string                  `json:"version"`
	Categories map[string]CategoryMeta `json:"categories"`
	Rules      []Definition            `json:"rules"`
}

// kindByRuleID binds each known rule id to its evaluation procedure
var kindByRuleID = map[string]Kind{
	"R001_MISSING_VALUES":   KindMissingValues,
	"R002_DUPLICATE_ROWS":   KindDuplicateRows,
	"R003_TYPE_MISMATCH":    KindTypeMismatch,
	"R004_EMAIL_FORMAT":     KindPatternConformity,
	"R005_PHONE_FORMAT":     KindPatternConformity,
	"R006_LOW_CARDINALITY":  KindLowCardinality,
	"R007_HIGH_NULL_RATE":   KindHighNullRate,
	"R008_CONSTANT_COLUMN":  KindConstantColumn,
	"R010_OUTLIERS_NUMERIC": KindNumericOutliers,
}

// defaultPolarity fixes the threshold direction per kind
var defaultPolarity = map[Kind]Polarity{
	KindMissingValues:     BadHigh,
	KindDuplicateRows:     BadHigh,
	KindHighNullRate:      BadHigh,
	KindNumericOutliers:   BadHigh,
	KindTypeMismatch:      BadLow,
	KindPatternConformity: BadLow,
	KindLowCardinality:    BadLow,
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and compiles a catalog document from disk. A missing or
// unreadable file is fatal for the analysis session.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewCatalogError(path, err)
	}
	return Parse(data)
}

// Parse compiles a catalog document. Malformed JSON or an uncompilable
// pattern fails fast.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCatalogMalformed, err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules defined", core.ErrCatalogMalformed)
	}

	cat := &Catalog{
		Version:    doc.Version,
		Categories: doc.Categories,
		Rules:      make([]Rule, 0, len(doc.Rules)),
	}
	for _, def := range doc.Rules {
		if def.RuleID == "" {
			return nil, fmt.Errorf("%w: rule without rule_id", core.ErrCatalogMalformed)
		}
		if def.Scope != quality.ScopeDataset && def.Scope != quality.ScopeColumn {
			return nil, fmt.Errorf("%w: rule %s has invalid scope %q", core.ErrCatalogMalformed, def.RuleID, def.Scope)
		}
		for i, keyword := range def.AppliesTo {
			def.AppliesTo[i] = strings.ToLower(keyword)
		}

		rule := Rule{Definition: def}
		kind, known := kindByRuleID[def.RuleID]
		if !known {
			kind = KindUnimplemented
		}
		rule.Kind = kind
		if rule.Polarity == "" {
			rule.Polarity = defaultPolarity[kind]
		}
		if def.Pattern != "" {
			matcher, err := regexp.Compile(def.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %s pattern: %v", core.ErrCatalogMalformed, def.RuleID, err)
			}
			rule.Matcher = matcher
		}
		cat.Rules = append(cat.Rules, rule)
	}
	return cat, nil
}

// Weights derives the category weights from catalog metadata, falling back
// to the defaults when the catalog carries none.
func (c *Catalog) Weights() (quality.Weights, error) {
	if len(c.Categories) == 0 {
		return quality.DefaultWeights(), nil
	}
	w := make(map[quality.Category]float64, len(c.Categories))
	for name, meta := range c.Categories {
		w[quality.Category(name)] = meta.Weight
	}
	return quality.NewWeights(w)
}

// DatasetRules returns the dataset-scoped rules in catalog order
func (c *Catalog) DatasetRules() []Rule {
	out := make([]Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		if r.Scope == quality.ScopeDataset {
			out = append(out, r)
		}
	}
	return out
}

// ColumnRules returns the column-scoped rules in catalog order
func (c *Catalog) ColumnRules() []Rule {
	out := make([]Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		if r.Scope == quality.ScopeColumn {
			out = append(out, r)
		}
	}
	return out
}
