// Package history persists a record of each report generation run.
//
// One row per run: snapshot identities, connector and failure counts, and
// where the assembled report was written. The store is optional: report
// generation succeeds without a configured database; history is simply not
// recorded.
//
// MySQL is the service deployment target; SQLite covers local CLI use and
// tests.
package history
