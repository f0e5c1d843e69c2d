package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
	// StoreDBFile is the SQLite file holding the reading log
	StoreDBFile string
	// QRSize is the width of the exported profile QR image in pixels
	QRSize int
	// QRMargin is the quiet zone around the QR code, in modules
	QRMargin int
	// SnapshotWidth is the browser viewport width used by snapshot
	SnapshotWidth int
	// SnapshotTimeout bounds a single snapshot run
	SnapshotTimeout time.Duration
)

// Defaults
const (
	DefaultStoreDBFile     = "./readlog.db"
	DefaultQRSize          = 256
	DefaultQRMargin        = 2
	DefaultSnapshotWidth   = 1280
	DefaultSnapshotTimeout = 30 * time.Second
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("store.dbfile", DefaultStoreDBFile)
	viper.SetDefault("profile.qrsize", DefaultQRSize)
	viper.SetDefault("profile.qrmargin", DefaultQRMargin)
	viper.SetDefault("snapshot.width", DefaultSnapshotWidth)
	viper.SetDefault("snapshot.timeout", DefaultSnapshotTimeout)
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.dbfile", "./readlog-datasette.db")

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	StoreDBFile = viper.GetString("store.dbfile")
	QRSize = viper.GetInt("profile.qrsize")
	QRMargin = viper.GetInt("profile.qrmargin")
	SnapshotWidth = viper.GetInt("snapshot.width")
	SnapshotTimeout = viper.GetDuration("snapshot.timeout")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetStoreDBFile overrides the store location, typically from a CLI flag
func SetStoreDBFile(path string) {
	if path != "" {
		StoreDBFile = path
	}
}
