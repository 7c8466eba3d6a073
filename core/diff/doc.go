// Package diff computes deterministic row/cell-level differences between
// the pilot and production versions of a table.
//
// Both tables must share a schema. Rows are matched by primary key: keys
// present only in pilot become Deleted rows, keys present only in
// production become Added rows, and keys present in both are compared
// column by column. Any differing non-key column marks the row Modified
// and records the column name in the row's changed set.
//
// # Ordering
//
// Output order is reproducible regardless of map iteration order. With a
// declared sort key, rows are ordered by it ascending. Otherwise the
// production row order is the base, and Deleted rows are inserted at the
// position implied by their pilot-side order (anchored after the nearest
// preceding pilot row that survives in production), ties broken by
// primary-key comparison.
//
// # Parent/child tables
//
// A Set diffs a parent table together with its child tables. A parent
// row's own state never reflects child changes; the renderer asks
// HasChangedDescendants separately when deciding whether an otherwise
// unchanged parent is worth showing.
//
// Diff is a pure function of its inputs: diffing a table against itself
// yields only Unchanged rows, and re-running on identical inputs yields an
// identical result.
package diff
