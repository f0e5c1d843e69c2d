package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/readlog/internal/cmdutil"
	"github.com/lepinkainen/readlog/internal/config"
	"github.com/lepinkainen/readlog/internal/fileutil"
	"github.com/lepinkainen/readlog/internal/library"
	"github.com/lepinkainen/readlog/internal/obsidian"
	"github.com/lepinkainen/readlog/internal/session"
)

const booksTable = "books"

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	genre TEXT,
	rating INTEGER NOT NULL DEFAULT 0,
	review TEXT,
	date_added TEXT
);
`

func bookToMap(book library.Book) map[string]any {
	return cmdutil.StructToMap(book, cmdutil.StructToMapOptions{})
}

// MarkdownExportCmd writes an Obsidian note per book
type MarkdownExportCmd struct {
	Output string `short:"o" help:"Subdirectory under markdown output directory" default:"readlog"`
}

func (c *MarkdownExportCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		out := &cmdutil.OutputConfig{OutputDir: c.Output, ConfigKey: "readlog"}
		if err := cmdutil.SetupOutputDir(out); err != nil {
			return err
		}

		written, skipped := 0, 0
		for _, book := range sess.Books() {
			ok, err := obsidian.WriteBookNote(book, out.OutputDir, config.OverwriteFiles)
			if err != nil {
				return err
			}
			if ok {
				written++
			} else {
				skipped++
			}
		}

		slog.Info("Exported notes", "dir", out.OutputDir, "written", written, "skipped", skipped)
		_, err := fmt.Fprintf(stdout, "Wrote %d notes to %s (%d unchanged)\n", written, out.OutputDir, skipped)
		return err
	})
}

// JSONExportCmd writes the collection as a JSON array
type JSONExportCmd struct {
	Output string `short:"o" help:"Path to JSON output file (defaults to json/readlog.json)"`
}

func (c *JSONExportCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		path := cmdutil.JSONOutputPath(c.Output, "readlog")
		books := sess.Books()
		if books == nil {
			books = []library.Book{}
		}

		written, err := fileutil.WriteJSONFile(books, path, config.OverwriteFiles)
		if err != nil {
			return err
		}
		if !written {
			slog.Warn("JSON file exists, use --overwrite to replace it", "path", path)
			return nil
		}
		_, err = fmt.Fprintf(stdout, "Wrote %d books to %s\n", len(books), path)
		return err
	})
}

// PublishCmd pushes the collection to a Datasette database
type PublishCmd struct {
	Remote string `help:"Datasette base URL (defaults to datasette.remote)"`
	Token  string `help:"Datasette API token (defaults to datasette.token)"`
}

func (c *PublishCmd) Run() error {
	target := cmdutil.DatastoreTargetFromConfig()
	if c.Remote != "" {
		target.Remote = c.Remote
	}
	if c.Token != "" {
		target.Token = c.Token
	}

	return withSession(func(sess *session.Session) error {
		books := sess.Books()
		if err := cmdutil.PublishToDatastore(target, books, booksSchema, booksTable, "books", bookToMap); err != nil {
			return err
		}
		_, err := fmt.Fprintf(stdout, "Published %d books to %s\n", len(books), target)
		return err
	})
}
