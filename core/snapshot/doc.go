// Package snapshot loads an exported configuration snapshot into an
// immutable, queryable tree.
//
// A snapshot export is a JSON document. Objects become named nodes, arrays
// become repeated nodes of the same name, and scalar members become string
// attributes on their node. Array order is preserved; object members are
// ordered by name so that two loads of the same export always produce the
// same tree.
//
// Queries address nodes by path segments (SelectOne, SelectAll) with
// optional typed attribute predicates (Find). There is no string query
// language: filters are Match values, so an identifier containing special
// characters can never corrupt a query.
//
// Snapshots are read-only for the duration of a run; concurrent readers
// need no coordination.
package snapshot
