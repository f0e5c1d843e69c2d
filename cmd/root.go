package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/readlog/internal/config"
	"github.com/lepinkainen/readlog/internal/storage"
)

// stdout receives command output; logs go through slog
var stdout io.Writer = os.Stdout

var openStore = func(path string) (storage.Store, error) {
	return storage.OpenSQLiteStore(path)
}

// CLI represents the complete command structure for the readlog application
type CLI struct {
	// Global flags
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	Overwrite bool   `help:"Overwrite existing files when exporting"`
	DBFile    string `name:"db" help:"Path to the reading log database (defaults to store.dbfile)"`

	// Datasette flags
	Datasette   bool   `help:"Enable Datasette output" default:"false"`
	DatasetteDB string `help:"Path to Datasette SQLite database file (defaults to datasette.dbfile)"`

	Setup    SetupCmd    `cmd:"" help:"Create or update your reader profile and preferences"`
	Add      AddCmd      `cmd:"" help:"Add a book to your reading log"`
	List     ListCmd     `cmd:"" help:"Show your books"`
	Review   ReviewCmd   `cmd:"" help:"Rate and review a book"`
	Stats    StatsCmd    `cmd:"" help:"Show total books and average rating"`
	Profile  ProfileCmd  `cmd:"" help:"Export your reading profile as text and a QR code"`
	Snapshot SnapshotCmd `cmd:"" help:"Render your bookshelf page to a PNG image"`
	Export   ExportCmd   `cmd:"" help:"Export books to other formats"`
	Import   ImportCmd   `cmd:"" help:"Import books from other services"`
	Publish  PublishCmd  `cmd:"" help:"Publish your books to Datasette"`
	Logout   LogoutCmd   `cmd:"" help:"Delete all reading log data"`
}

// ExportCmd represents the export command and its subcommands
type ExportCmd struct {
	Markdown MarkdownExportCmd `cmd:"" help:"Write one Obsidian note per book"`
	JSON     JSONExportCmd     `cmd:"" name:"json" help:"Write the collection as JSON"`
}

// ImportCmd represents the import command and its subcommands
type ImportCmd struct {
	Goodreads GoodreadsImportCmd `cmd:"" help:"Import books from a Goodreads library export"`
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("readlog"),
		kong.Description("Track the books you read, rate them and share your reading profile."),
		kong.UsageOnError(),
	}
	return kong.New(cli, append(base, opts...)...)
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("Failed to build CLI", "error", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	initLogging(cli.Verbose)
	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() error {
	viper.SetEnvPrefix("READLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	if cli.Overwrite {
		config.SetOverwriteFiles(true)
	}
	config.SetStoreDBFile(cli.DBFile)

	if cli.Datasette {
		viper.Set("datasette.enabled", true)
	}
	if cli.DatasetteDB != "" {
		viper.Set("datasette.dbfile", cli.DatasetteDB)
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

// withStore opens the configured store for the duration of fn
func withStore(fn func(store storage.Store) error) error {
	store, err := openStore(config.StoreDBFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("Failed to close store", "error", cerr)
		}
	}()
	return fn(store)
}
