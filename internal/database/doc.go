// Package database provides SQLite-based persistence for extracted
// message records, so a mined thread can be re-reported without
// re-parsing its page snapshots.
package database
