package diff

import (
	"fmt"
	"sort"

	"sync-documenter/core/table"
)

// State classifies what happened to a row between pilot and production.
type State int

const (
	// Unchanged rows exist on both sides with equal non-key values.
	Unchanged State = iota
	// Added rows exist only in production.
	Added
	// Deleted rows exist only in pilot.
	Deleted
	// Modified rows exist on both sides with at least one differing column.
	Modified
)

// String returns the display label for a state.
func (s State) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// Row is the diff of one primary-key value across the two tables.
type Row struct {
	State State

	// Key is the composite primary-key value.
	Key string

	// Pilot holds the pilot-side values; nil for Added rows.
	Pilot table.Row

	// Production holds the production-side values; nil for Deleted rows.
	Production table.Row

	// Changed names the differing columns. Non-empty only for Modified.
	Changed map[string]struct{}
}

// Values returns the side that exists: production if present, pilot
// otherwise. Used for display of key and unchanged cells.
func (r Row) Values() table.Row {
	if r.Production != nil {
		return r.Production
	}
	return r.Pilot
}

// HasChanged reports whether the named column differs between sides.
func (r Row) HasChanged(column string) bool {
	_, ok := r.Changed[column]
	return ok
}

// Result is the ordered diff of one table pair.
type Result struct {
	Schema *table.Schema
	Rows   []Row
}

// HasChanges reports whether any row is not Unchanged.
func (r *Result) HasChanges() bool {
	for _, row := range r.Rows {
		if row.State != Unchanged {
			return true
		}
	}
	return false
}

// Diff compares the pilot and production versions of a table. Both tables
// must share the same schema value.
func Diff(pilot, production *table.Table) (*Result, error) {
	if pilot.Schema != production.Schema {
		return nil, fmt.Errorf("pilot and production tables use different schemas")
	}
	schema := pilot.Schema

	rows := baseRows(pilot, production, schema)
	rows = insertDeleted(rows, pilot, production, schema)

	if schema.SortKey != "" {
		sortIdx, _ := schema.ColumnIndex(schema.SortKey)
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Values()[sortIdx], rows[j].Values()[sortIdx]
			if table.ValuesEqual(a, b) {
				return rows[i].Key < rows[j].Key
			}
			return lessSortValue(a, b)
		})
	}

	return &Result{Schema: schema, Rows: rows}, nil
}

// baseRows walks production in table order, classifying each row as Added,
// Modified, or Unchanged against the pilot side.
func baseRows(pilot, production *table.Table, schema *table.Schema) []Row {
	rows := make([]Row, 0, production.Len())
	for _, prodRow := range production.Rows() {
		key := schema.Key(prodRow)
		pilotRow, inPilot := pilot.Lookup(key)
		if !inPilot {
			rows = append(rows, Row{State: Added, Key: key, Production: prodRow})
			continue
		}
		changed := changedColumns(schema, pilotRow, prodRow)
		state := Unchanged
		if len(changed) > 0 {
			state = Modified
		}
		rows = append(rows, Row{
			State:      state,
			Key:        key,
			Pilot:      pilotRow,
			Production: prodRow,
			Changed:    changed,
		})
	}
	return rows
}

// insertDeleted places pilot-only rows into the production-ordered base at
// the position implied by their pilot-side order: each deleted row is
// anchored after the nearest preceding pilot row that survives in
// production. Deleted rows sharing an anchor are ordered by key.
func insertDeleted(base []Row, pilot, production *table.Table, schema *table.Schema) []Row {
	groups := make(map[string][]Row)
	anchor := ""
	for _, pilotRow := range pilot.Rows() {
		key := schema.Key(pilotRow)
		if _, survives := production.Lookup(key); survives {
			anchor = key
			continue
		}
		groups[anchor] = append(groups[anchor], Row{State: Deleted, Key: key, Pilot: pilotRow})
	}
	if len(groups) == 0 {
		return base
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].Key < group[j].Key })
	}

	out := make([]Row, 0, len(base)+len(groups))
	out = append(out, groups[""]...)
	for _, row := range base {
		out = append(out, row)
		out = append(out, groups[row.Key]...)
	}
	return out
}

// changedColumns compares every non-key column pairwise and returns the
// set of differing column names, or nil when the rows are equal.
func changedColumns(schema *table.Schema, pilotRow, prodRow table.Row) map[string]struct{} {
	var changed map[string]struct{}
	for i, col := range schema.Columns {
		if schema.IsKeyColumn(col.Name) {
			continue
		}
		if table.ValuesEqual(pilotRow[i], prodRow[i]) {
			continue
		}
		if changed == nil {
			changed = make(map[string]struct{})
		}
		changed[col.Name] = struct{}{}
	}
	return changed
}

func lessSortValue(a, b any) bool {
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
	return table.FormatValue(a) < table.FormatValue(b)
}
