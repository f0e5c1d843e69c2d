package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/readlog/internal/config"
	"github.com/lepinkainen/readlog/internal/fileutil"
	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/snapshot"
	"github.com/lepinkainen/readlog/internal/view"
)

var captureSnapshot = snapshot.Capture

// ProfileCmd prints the shareable reading profile
type ProfileCmd struct {
	JSON bool   `help:"Print the profile summary as JSON instead of text"`
	QR   string `help:"Write the profile QR code PNG to this file"`
}

func (c *ProfileCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		res, err := sess.Dispatch(session.ExportProfile{})
		if err != nil {
			return err
		}
		export := res.Export

		if c.JSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(export.Summary); err != nil {
				return err
			}
		} else if _, err := fmt.Fprint(stdout, export.Text); err != nil {
			return err
		}

		if c.QR == "" {
			return nil
		}
		written, err := fileutil.WriteFileWithOverwrite(c.QR, export.QRCode, 0o644, config.OverwriteFiles)
		if err != nil {
			return err
		}
		if !written {
			slog.Warn("QR code file exists, use --overwrite to replace it", "path", c.QR)
			return nil
		}
		slog.Info("Wrote profile QR code", "path", c.QR, "bytes", len(export.QRCode))
		return nil
	})
}

// SnapshotCmd renders the bookshelf page through headless Chrome
type SnapshotCmd struct {
	Output  string `short:"o" help:"PNG output path" default:"readlog.png"`
	Width   int    `help:"Viewport width in pixels (defaults to snapshot.width)"`
	HTML    string `help:"Also write the rendered HTML page to this file"`
	Headful bool   `help:"Show the browser window while rendering"`
	Heading string `help:"Page heading (defaults to your name)"`
}

func (c *SnapshotCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		heading := c.Heading
		if heading == "" {
			heading = fmt.Sprintf("%s's books", sess.User().Name)
		}

		page, err := view.RenderPage(heading, sess.Books())
		if err != nil {
			return err
		}

		if c.HTML != "" {
			if _, err := fileutil.WriteFileWithOverwrite(c.HTML, page, 0o644, true); err != nil {
				return err
			}
		}

		opts := snapshot.DefaultOptions()
		opts.Headless = !c.Headful
		width := c.Width
		if width <= 0 {
			width = config.SnapshotWidth
		}
		if width > 0 {
			opts.Width = int64(width)
		}
		if config.SnapshotTimeout > 0 {
			opts.Timeout = config.SnapshotTimeout
		}

		png, err := captureSnapshot(context.Background(), page, opts)
		if err != nil {
			return err
		}

		written, err := fileutil.WriteFileWithOverwrite(c.Output, png, 0o644, config.OverwriteFiles)
		if err != nil {
			return err
		}
		if !written {
			slog.Warn("Snapshot file exists, use --overwrite to replace it", "path", c.Output)
			return nil
		}
		_, err = fmt.Fprintf(stdout, "Saved snapshot of %d books to %s\n", len(sess.Books()), c.Output)
		return err
	})
}
