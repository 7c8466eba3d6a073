// Package table provides typed, keyed in-memory tables built from
// configuration snapshots.
//
// A table is an ordered slice of rows plus a primary-key index, not a
// relational framework: joins to parent tables happen by explicit
// foreign-key lookups at render time.
//
// # Schema
//
// A schema declares ordered, typed columns, a non-empty primary-key subset,
// and optionally a sort-key column and a parent-link column (the foreign
// key joining rows to a parent table). Schema validation errors are
// programming errors and fatal at definition time.
//
// # Building
//
// Tables are populated once per entity per run via an externally supplied
// extraction function. An entity absent from a snapshot yields an empty
// table, not an error. Without a sort key, rows keep extraction order.
package table
