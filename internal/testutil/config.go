package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/readlog/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles  bool
	StoreDBFile     string
	QRSize          int
	QRMargin        int
	SnapshotWidth   int
	SnapshotTimeout time.Duration
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:  config.OverwriteFiles,
		StoreDBFile:     config.StoreDBFile,
		QRSize:          config.QRSize,
		QRMargin:        config.QRMargin,
		SnapshotWidth:   config.SnapshotWidth,
		SnapshotTimeout: config.SnapshotTimeout,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.StoreDBFile = state.StoreDBFile
	config.QRSize = state.QRSize
	config.QRMargin = state.QRMargin
	config.SnapshotWidth = state.SnapshotWidth
	config.SnapshotTimeout = state.SnapshotTimeout
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig points the store and every output directory at env and
// restores the previous configuration when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	ResetConfig(t)

	config.OverwriteFiles = true
	config.StoreDBFile = env.Path("readlog.db")
	config.QRSize = config.DefaultQRSize
	config.QRMargin = config.DefaultQRMargin

	viper.Set("store.dbfile", config.StoreDBFile)
	viper.Set("markdownoutputdir", env.Path("markdown"))
	viper.Set("jsonoutputdir", env.Path("json"))
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state.
	})
}

// SetupDatasetteDB enables local datasette publishing into a file inside env.
// Returns the database path.
func SetupDatasetteDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("datasette.db")
	SetViperValue(t, "datasette.enabled", true)
	SetViperValue(t, "datasette.dbfile", dbPath)

	return dbPath
}
