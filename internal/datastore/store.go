// Package datastore publishes readlog tables to a Datasette-ready SQLite
// file or to a remote Datasette instance.
package datastore

// Store is a destination for published tables
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// BatchInsert upserts records into table, keyed by the table's primary key
	BatchInsert(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
