// Package report renders diff results as paired HTML fragments: one body
// fragment and one table-of-contents fragment per entity section.
//
// Each section emits a heading carrying a bookmark anchor, followed by a
// data table with a header row and one row per diff row. Rows are tagged
// with a CSS class for their state (row-added, row-deleted, row-modified,
// row-unchanged); within a modified row, only the cells whose columns
// actually changed are tagged cell-changed and show the old and new
// values. Child tables render nested beneath their parent row in parent
// row order; a parent with no children keeps an empty nested region.
//
// A section whose table has no rows renders its fixed explanatory
// sentence instead of an empty table shell.
//
// Body and TOC anchors are cross-linked through the bookmark manager, so
// a reader can jump from the contents to a section and back. Fragments
// are complete strings; callers receive either a full (body, TOC) pair or
// an error, never partial output. Assembly of fragments into a document
// is the caller's job.
package report
