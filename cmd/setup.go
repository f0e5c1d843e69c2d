package cmd

import (
	"fmt"

	"github.com/lepinkainen/readlog/internal/onboarding"
	"github.com/lepinkainen/readlog/internal/storage"
)

// SetupCmd writes the reader profile and preferences. Flags left empty keep
// the values from a previous setup.
type SetupCmd struct {
	Name      string `short:"n" help:"Your name"`
	Genres    string `short:"g" help:"Favorite genres, comma separated"`
	Frequency string `short:"r" help:"How often you read (e.g. Weekly)"`
	Author    string `short:"a" help:"Favorite author"`
}

func (c *SetupCmd) Run() error {
	return withStore(func(store storage.Store) error {
		in, existed, err := onboarding.Current(store)
		if err != nil {
			return err
		}

		if c.Name != "" {
			in.Name = c.Name
		}
		if c.Genres != "" {
			in.Genres = onboarding.ParseGenres(c.Genres)
		}
		if c.Frequency != "" {
			in.Frequency = c.Frequency
		}
		if c.Author != "" {
			in.Author = c.Author
		}

		if err := onboarding.Setup(store, in); err != nil {
			return err
		}

		name := in.Normalize().Name
		if existed {
			_, err = fmt.Fprintf(stdout, "Profile updated for %s.\n", name)
		} else {
			_, err = fmt.Fprintf(stdout, "Welcome, %s! Add your first book with `readlog add`.\n", name)
		}
		return err
	})
}
