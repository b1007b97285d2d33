package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"dqlens/domain/dataset"
	"dqlens/internal/inference"

	"github.com/montanaflynn/stats"
)

// Cleaner applies remediation operations to a working copy of a dataset.
// The quality engine itself never mutates its input; cleaning is a separate,
// optional collaborator that hands back a new dataset plus a log of what it
// did.
type Cleaner struct {
	source  *dataset.Dataset
	columns []dataset.Column
	log     []Operation
}

// Operation is one logged cleaning step
type Operation struct {
	Name        string            `json:"name"`
	Columns     []string          `json:"columns,omitempty"`
	RowsRemoved int               `json:"rows_removed,omitempty"`
	Strategy    string            `json:"strategy,omitempty"`
	Renamed     map[string]string `json:"renamed,omitempty"`
}

// Report summarizes a cleaning session
type Report struct {
	SourceName      string      `json:"source_name"`
	OriginalRows    int         `json:"original_rows"`
	OriginalColumns int         `json:"original_columns"`
	CleanedRows     int         `json:"cleaned_rows"`
	CleanedColumns  int         `json:"cleaned_columns"`
	Operations      []Operation `json:"operations"`
}

// New creates a cleaner over a deep copy of the dataset
func New(ds *dataset.Dataset) *Cleaner {
	columns := make([]dataset.Column, len(ds.Columns()))
	for i, col := range ds.Columns() {
		columns[i] = dataset.Column{
			Name:   col.Name,
			Values: append([]dataset.Value(nil), col.Values...),
		}
	}
	return &Cleaner{source: ds, columns: columns}
}

// RemoveEmptyColumns drops columns whose values are all absent
func (c *Cleaner) RemoveEmptyColumns() *Cleaner {
	return c.dropColumns("remove_empty_columns", func(col dataset.Column) bool {
		return len(col.NonAbsent()) == 0
	})
}

// RemoveHighMissingColumns drops columns whose absent-value ratio reaches
// the threshold (0.8 means 80% missing).
func (c *Cleaner) RemoveHighMissingColumns(threshold float64) *Cleaner {
	return c.dropColumns(fmt.Sprintf("remove_high_missing_columns(%.2f)", threshold), func(col dataset.Column) bool {
		if len(col.Values) == 0 {
			return false
		}
		return float64(col.NullCount())/float64(len(col.Values)) >= threshold
	})
}

// RemoveConstantColumns drops columns carrying at most one distinct value
func (c *Cleaner) RemoveConstantColumns() *Cleaner {
	return c.dropColumns("remove_constant_columns", func(col dataset.Column) bool {
		return len(col.NonAbsent()) > 0 && col.UniqueCount() <= 1
	})
}

// RemoveDuplicateRows keeps the first occurrence of each distinct row
func (c *Cleaner) RemoveDuplicateRows() *Cleaner {
	if len(c.columns) == 0 {
		return c
	}
	rows := len(c.columns[0].Values)
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		var b strings.Builder
		for _, col := range c.columns {
			v := col.Values[i]
			if v.Absent {
				b.WriteString("\x00\x01")
			} else {
				b.WriteString(v.Raw)
				b.WriteByte('\x00')
			}
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if removed := rows - len(keep); removed > 0 {
		for ci, col := range c.columns {
			kept := make([]dataset.Value, len(keep))
			for j, idx := range keep {
				kept[j] = col.Values[idx]
			}
			c.columns[ci].Values = kept
		}
		c.log = append(c.log, Operation{Name: "remove_duplicate_rows", RowsRemoved: removed})
	}
	return c
}

// TrimWhitespace strips leading and trailing whitespace from present values
func (c *Cleaner) TrimWhitespace() *Cleaner {
	var touched []string
	for ci, col := range c.columns {
		changed := false
		for vi, v := range col.Values {
			if v.Absent {
				continue
			}
			trimmed := strings.TrimSpace(v.Raw)
			if trimmed != v.Raw {
				c.columns[ci].Values[vi] = dataset.NewValue(trimmed)
				changed = true
			}
		}
		if changed {
			touched = append(touched, col.Name)
		}
	}
	if len(touched) > 0 {
		c.log = append(c.log, Operation{Name: "trim_whitespace", Columns: touched})
	}
	return c
}

var nonWordRun = regexp.MustCompile(`[^\w]+`)
var underscoreRun = regexp.MustCompile(`_+`)

// StandardizeColumnNames rewrites names to snake_case, deduplicating
// collisions with numeric suffixes.
func (c *Cleaner) StandardizeColumnNames() *Cleaner {
	renamed := make(map[string]string)
	seen := make(map[string]int, len(c.columns))
	for i, col := range c.columns {
		name := strings.ToLower(col.Name)
		name = nonWordRun.ReplaceAllString(name, "_")
		name = underscoreRun.ReplaceAllString(name, "_")
		name = strings.Trim(name, "_")
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		if name != col.Name {
			renamed[col.Name] = name
		}
		c.columns[i].Name = name
	}
	if len(renamed) > 0 {
		c.log = append(c.log, Operation{Name: "standardize_column_names", Renamed: renamed})
	}
	return c
}

// FillMissingNumeric imputes absent values in predominantly numeric columns.
// Strategy is one of median, mean, zero.
func (c *Cleaner) FillMissingNumeric(strategy string) *Cleaner {
	var filled []string
	for ci, col := range c.columns {
		values := col.NonAbsent()
		if len(values) == 0 || col.NullCount() == 0 {
			continue
		}
		data := make([]float64, 0, len(values))
		for _, v := range values {
			if num, ok := inference.ParseNumeric(v); ok {
				data = append(data, num)
			}
		}
		if float64(len(data))/float64(len(values)) < 0.7 {
			continue
		}

		var fill float64
		switch strategy {
		case "mean":
			fill, _ = stats.Mean(data)
		case "median":
			fill, _ = stats.Median(data)
		case "zero":
			fill = 0
		default:
			continue
		}
		raw := formatNumber(fill)
		for vi, v := range col.Values {
			if v.Absent {
				c.columns[ci].Values[vi] = dataset.NewValue(raw)
			}
		}
		filled = append(filled, col.Name)
	}
	if len(filled) > 0 {
		c.log = append(c.log, Operation{Name: "fill_missing_numeric", Columns: filled, Strategy: strategy})
	}
	return c
}

// FillMissingCategorical imputes absent values in non-numeric columns with
// the mode or a fixed "unknown" marker.
func (c *Cleaner) FillMissingCategorical(strategy string) *Cleaner {
	var filled []string
	for ci, col := range c.columns {
		values := col.NonAbsent()
		if len(values) == 0 || col.NullCount() == 0 {
			continue
		}
		numeric := 0
		for _, v := range values {
			if inference.IsNumeric(v) {
				numeric++
			}
		}
		if float64(numeric)/float64(len(values)) >= 0.7 {
			continue
		}

		var fill string
		switch strategy {
		case "mode":
			fill = mode(values)
		case "unknown":
			fill = "unknown"
		default:
			continue
		}
		for vi, v := range col.Values {
			if v.Absent {
				c.columns[ci].Values[vi] = dataset.NewValue(fill)
			}
		}
		filled = append(filled, col.Name)
	}
	if len(filled) > 0 {
		c.log = append(c.log, Operation{Name: "fill_missing_categorical", Columns: filled, Strategy: strategy})
	}
	return c
}

// AutoClean runs the standard pipeline. Aggressive mode additionally drops
// half-empty and constant columns.
func (c *Cleaner) AutoClean(aggressive bool) *Cleaner {
	c.RemoveEmptyColumns().
		RemoveDuplicateRows().
		StandardizeColumnNames().
		TrimWhitespace().
		RemoveHighMissingColumns(0.9).
		FillMissingNumeric("median").
		FillMissingCategorical("mode")
	if aggressive {
		c.RemoveHighMissingColumns(0.5).
			RemoveConstantColumns()
	}
	return c
}

// Result builds the cleaned dataset
func (c *Cleaner) Result() (*dataset.Dataset, error) {
	return dataset.New(c.source.Name, c.columns)
}

// CleaningReport summarizes what changed
func (c *Cleaner) CleaningReport() Report {
	cleanedRows := 0
	if len(c.columns) > 0 {
		cleanedRows = len(c.columns[0].Values)
	}
	return Report{
		SourceName:      c.source.Name,
		OriginalRows:    c.source.RowCount(),
		OriginalColumns: c.source.ColumnCount(),
		CleanedRows:     cleanedRows,
		CleanedColumns:  len(c.columns),
		Operations:      c.log,
	}
}

func (c *Cleaner) dropColumns(operation string, predicate func(dataset.Column) bool) *Cleaner {
	var dropped []string
	kept := c.columns[:0]
	for _, col := range c.columns {
		if predicate(col) {
			dropped = append(dropped, col.Name)
		} else {
			kept = append(kept, col)
		}
	}
	c.columns = kept
	if len(dropped) > 0 {
		c.log = append(c.log, Operation{Name: operation, Columns: dropped})
	}
	return c
}

func mode(values []string) string {
	freq := make(map[string]int, len(values))
	best, bestCount := "unknown", 0
	for _, v := range values {
		freq[v]++
		if freq[v] > bestCount {
			best, bestCount = v, freq[v]
		}
	}
	return best
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
