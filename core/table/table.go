package table

import (
	"fmt"
	"sort"
	"strings"
)

// keySeparator joins composite primary-key values. The unit separator
// cannot appear in configuration values, keeping composite keys unambiguous.
const keySeparator = "\x1f"

// Row is one tuple of cell values in schema column order.
type Row []any

// Table is an ordered sequence of rows conforming to a schema, plus a
// primary-key index. Tables are append-only during the build phase and
// read-only afterwards.
type Table struct {
	Schema *Schema

	rows  []Row
	index map[string]int
}

// New creates an empty table for the given schema.
func New(schema *Schema) *Table {
	return &Table{
		Schema: schema,
		rows:   make([]Row, 0),
		index:  make(map[string]int),
	}
}

// Extractor produces raw row tuples for one entity from a snapshot. It is
// supplied by the entity documenter; the table layer never queries
// snapshots itself.
type Extractor func() ([]Row, error)

// Build populates a table from an extraction function. An extractor that
// finds no rows (entity absent from the snapshot) yields an empty table,
// not an error. If the schema declares a sort key, rows are sorted by it
// ascending (stable); otherwise extraction order is kept.
func Build(schema *Schema, extract Extractor) (*Table, error) {
	t := New(schema)

	rows, err := extract()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	if schema.SortKey != "" {
		t.sortBySortKey()
	}
	return t, nil
}

// Append adds a row. A row with a duplicate primary-key value is a
// programming error in the extractor and fails the build.
func (t *Table) Append(row Row) error {
	if len(row) != len(t.Schema.Columns) {
		return fmt.Errorf("row has %d values, schema has %d columns", len(row), len(t.Schema.Columns))
	}
	key := t.Schema.Key(row)
	if _, dup := t.index[key]; dup {
		return fmt.Errorf("duplicate primary-key value %q", strings.ReplaceAll(key, keySeparator, "|"))
	}
	t.index[key] = len(t.rows)
	t.rows = append(t.rows, row)
	return nil
}

// Rows returns the rows in table order. The slice must not be mutated.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Lookup returns the row with the given primary-key value.
func (t *Table) Lookup(key string) (Row, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// Key builds the composite primary-key value for a row of this schema.
func (s *Schema) Key(row Row) string {
	parts := make([]string, len(s.PrimaryKey))
	for i, name := range s.PrimaryKey {
		idx := s.colIndex[name]
		parts[i] = FormatValue(row[idx])
	}
	return strings.Join(parts, keySeparator)
}

func (t *Table) sortBySortKey() {
	idx, _ := t.Schema.ColumnIndex(t.Schema.SortKey)
	sort.SliceStable(t.rows, func(i, j int) bool {
		return lessValue(t.rows[i][idx], t.rows[j][idx])
	})
	for i, row := range t.rows {
		t.index[t.Schema.Key(row)] = i
	}
}

// lessValue orders sort-key values: numerics numerically, everything else
// by formatted string.
func lessValue(a, b any) bool {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return FormatValue(a) < FormatValue(b)
}
