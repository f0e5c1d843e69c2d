package cmdutil

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/lepinkainen/readlog/internal/datastore"
)

// DatasetteDatabase is the database name used for remote publishing
const DatasetteDatabase = "readlog"

// DatastoreTarget says where publishing goes. Remote wins over DBFile.
type DatastoreTarget struct {
	DBFile string
	Remote string
	Token  string
}

// DatastoreTargetFromConfig reads the datasette.* keys
func DatastoreTargetFromConfig() DatastoreTarget {
	return DatastoreTarget{
		DBFile: viper.GetString("datasette.dbfile"),
		Remote: viper.GetString("datasette.remote"),
		Token:  viper.GetString("datasette.token"),
	}
}

func (t DatastoreTarget) String() string {
	if t.Remote != "" {
		return t.Remote
	}
	return t.DBFile
}

func (t DatastoreTarget) store() datastore.Store {
	if t.Remote != "" {
		return datastore.NewDatasetteClient(strings.TrimRight(t.Remote, "/"), t.Token)
	}
	return datastore.NewSQLiteStore(t.DBFile)
}

// WriteToDatastore publishes records when datasette.enabled is set and is a
// no-op otherwise.
func WriteToDatastore[T any](records []T, schema, table, description string, mapper func(T) map[string]any) error {
	if !viper.GetBool("datasette.enabled") {
		slog.Debug("Datasette publishing disabled", "table", table)
		return nil
	}
	return PublishToDatastore(DatastoreTargetFromConfig(), records, schema, table, description, mapper)
}

// PublishToDatastore writes records into table at target
func PublishToDatastore[T any](target DatastoreTarget, records []T, schema, table, description string, mapper func(T) map[string]any) error {
	if target.Remote == "" && target.DBFile == "" {
		return fmt.Errorf("no datasette target configured")
	}

	store := target.store()
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, mapper(record))
	}

	if err := store.BatchInsert(DatasetteDatabase, table, rows); err != nil {
		return fmt.Errorf("failed to publish %s: %w", description, err)
	}

	slog.Info("Published to Datasette", "what", description, "rows", len(rows), "target", target.String())
	return nil
}
