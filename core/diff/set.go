package diff

import (
	"fmt"

	"sync-documenter/core/table"
)

// Pair bundles the pilot and production versions of one table.
type Pair struct {
	Pilot      *table.Table
	Production *table.Table
}

// Set is the diff of a parent table together with its child tables. The
// parent is always diffed before its children. Child rows are joined to
// parent rows at render time via the child schema's parent-link column.
type Set struct {
	Parent   *Result
	Children []*Result
}

// DiffSet diffs a parent table pair and its child table pairs. Every child
// schema must declare a parent-link column, and the parent's primary key
// must be a single column for the foreign-key join to be well defined.
func DiffSet(parent Pair, children []Pair) (*Set, error) {
	if len(children) > 0 && len(parent.Pilot.Schema.PrimaryKey) != 1 {
		return nil, fmt.Errorf("parent table with children must have a single-column primary key")
	}

	parentResult, err := Diff(parent.Pilot, parent.Production)
	if err != nil {
		return nil, fmt.Errorf("diff parent table: %w", err)
	}

	set := &Set{Parent: parentResult}
	for i, child := range children {
		if child.Pilot.Schema.ParentLink == "" {
			return nil, fmt.Errorf("child table %d declares no parent-link column", i)
		}
		childResult, err := Diff(child.Pilot, child.Production)
		if err != nil {
			return nil, fmt.Errorf("diff child table %d: %w", i, err)
		}
		set.Children = append(set.Children, childResult)
	}
	return set, nil
}

// ChildRows returns the rows of the given child result whose parent-link
// value joins to the parent row with the given key, in child result order.
func (s *Set) ChildRows(child int, parentKey string) []Row {
	result := s.Children[child]
	linkIdx, _ := result.Schema.ColumnIndex(result.Schema.ParentLink)

	var rows []Row
	for _, row := range result.Rows {
		if table.FormatValue(row.Values()[linkIdx]) == parentKey {
			rows = append(rows, row)
		}
	}
	return rows
}

// HasChangedDescendants reports whether any child row joined to the parent
// key is not Unchanged. This is deliberately separate from the parent
// row's own state: a parent is never marked Modified because of child
// changes alone.
func (s *Set) HasChangedDescendants(parentKey string) bool {
	for i := range s.Children {
		for _, row := range s.ChildRows(i, parentKey) {
			if row.State != Unchanged {
				return true
			}
		}
	}
	return false
}
