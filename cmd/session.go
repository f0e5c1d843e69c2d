package cmd

import (
	"github.com/lepinkainen/readlog/internal/config"
	"github.com/lepinkainen/readlog/internal/profile"
	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/storage"
)

// withSession activates a session on the configured store
func withSession(fn func(sess *session.Session) error) error {
	return withStore(func(store storage.Store) error {
		qr := profile.DefaultQROptions()
		if config.QRSize > 0 {
			qr.Size = config.QRSize
			qr.Margin = config.QRMargin
		}

		sess, err := session.Activate(store, session.Options{QR: &qr})
		if err != nil {
			return err
		}
		return fn(sess)
	})
}
