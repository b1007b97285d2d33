package dataset

import (
	"fmt"
	"strings"

	"dqlens/domain/core"
)

// Value is a single cell. Absent marks an explicit null; Raw is only
// meaningful when Absent is false.
type Value struct {
	Raw    string `json:"raw"`
	Absent bool   `json:"absent,omitempty"`
}

// NewValue creates a present value
func NewValue(raw string) Value {
	return Value{Raw: raw}
}

// Missing creates an absent value
func Missing() Value {
	return Value{Absent: true}
}

// IsAbsent reports whether the cell holds no value
func (v Value) IsAbsent() bool {
	return v.Absent
}

// Column is an ordered sequence of values under a name
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// NonAbsent returns the present raw values in order
func (c Column) NonAbsent() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.Absent {
			out = append(out, v.Raw)
		}
	}
	return out
}

// NullCount returns the number of absent values
func (c Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Absent {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct present values
func (c Column) UniqueCount() int {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if !v.Absent {
			seen[v.Raw] = struct{}{}
		}
	}
	return len(seen)
}

// Dataset is an ordered sequence of named columns with a fixed row count.
// The engine only reads it; ownership stays with the caller.
type Dataset struct {
	Name    string
	columns []Column
	rows    int
}

// New builds a dataset from columns. All columns must share one length and
// carry distinct names.
func New(name string, columns []Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, core.ErrEmptyDataset
	}
	rows := len(columns[0].Values)
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if len(col.Values) != rows {
			return nil, core.ErrRaggedColumns
		}
		if _, dup := seen[col.Name]; dup {
			return nil, core.ErrDuplicateColumn
		}
		seen[col.Name] = struct{}{}
	}
	return &Dataset{Name: name, columns: columns, rows: rows}, nil
}

// FromRecords builds a dataset from a header row and string records, turning
// any cell matching a null token (case-insensitive, trimmed) into an absent
// value. Records shorter than the header are padded with absent cells.
func FromRecords(name string, headers []string, records [][]string, nullTokens []string) (*Dataset, error) {
	nulls := make(map[string]struct{}, len(nullTokens))
	for _, tok := range nullTokens {
		nulls[strings.ToLower(tok)] = struct{}{}
	}
	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Name: h, Values: make([]Value, len(records))}
	}
	for r, rec := range records {
		for c := range headers {
			if c >= len(rec) {
				columns[c].Values[r] = Missing()
				continue
			}
			cell := rec[c]
			if _, isNull := nulls[strings.ToLower(strings.TrimSpace(cell))]; isNull {
				columns[c].Values[r] = Missing()
			} else {
				columns[c].Values[r] = NewValue(cell)
			}
		}
	}
	return New(name, columns)
}

// DefaultNullTokens are the cell spellings treated as absent by FromRecords
func DefaultNullTokens() []string {
	return []string{"", "na", "n/a", "nan", "null", "none", "-"}
}

// RowCount returns the fixed number of rows
func (d *Dataset) RowCount() int { return d.rows }

// ColumnCount returns the fixed number of columns
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// Columns returns the ordered columns
func (d *Dataset) Columns() []Column { return d.columns }

// Column returns the column with the given name
func (d *Dataset) Column(name string) (Column, error) {
	for _, col := range d.columns {
		if col.Name == name {
			return col, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
}

// ColumnNames returns the names in dataset order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// RowKey returns a canonical string for row i, used for whole-row equality.
// Absent cells are encoded distinctly from any present value.
func (d *Dataset) RowKey(i int) string {
	var b strings.Builder
	for _, col := range d.columns {
		v := col.Values[i]
		if v.Absent {
			b.WriteString("\x00\x01")
		} else {
			b.WriteString(v.Raw)
			b.WriteByte('\x00')
		}
	}
	return b.String()
}
