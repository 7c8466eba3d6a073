// Package connector documents the configuration of one synchronization
// connector: its properties, provisioning hierarchy, selected object
// types and attributes, synchronization rules, and run profiles.
//
// There is no type hierarchy of documenters. Each entity kind is a
// Documenter value: a table schema, an extraction function over the
// snapshot tree, and section metadata. The generic diff and render
// engines in core do the rest. Rule sections additionally go through the
// selector in rules.go, and run profiles are the parent/child case
// (profiles parent table, steps child table).
//
// Extraction problems that affect a single row (for example a selected
// attribute whose type definition is missing from the export) are
// recorded as diagnostics and skip the row; the entity and the document
// still complete.
package connector
