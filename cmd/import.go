package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/lepinkainen/readlog/internal/cmdutil"
	"github.com/lepinkainen/readlog/internal/importer/goodreads"
	"github.com/lepinkainen/readlog/internal/session"
)

var parseGoodreads = goodreads.ParseFile

// GoodreadsImportCmd represents the goodreads import command
type GoodreadsImportCmd struct {
	Input string `short:"f" help:"Path to Goodreads library export CSV file"`
}

func (g *GoodreadsImportCmd) Run() error {
	// Read from config if value not provided via flag
	input := g.Input
	if input == "" {
		input = viper.GetString("goodreads.csvfile")
	}
	if input == "" {
		return fmt.Errorf("input CSV file is required (provide via --input flag or goodreads.csvfile in config)")
	}

	entries, err := parseGoodreads(input)
	if err != nil {
		return err
	}

	return withSession(func(sess *session.Session) error {
		result, err := sess.Import(entries)
		if err != nil {
			return err
		}

		if err := cmdutil.WriteToDatastore(result.Added, booksSchema, booksTable, "imported books", bookToMap); err != nil {
			slog.Warn("Failed to publish imported books", "error", err)
		}

		_, err = fmt.Fprintf(stdout, "Imported %d books (%d duplicates, %d invalid)\n",
			len(result.Added), result.Duplicates, result.Invalid)
		return err
	})
}
