// Package storage is the ledger persistence layer: the ordered list of
// every lead the service has accepted.
//
// Two drivers:
//   - "file": a single JSON array rewritten on each append (default)
//   - "sqlite": SQLite database file (requires the sqlite build tag)
package storage
