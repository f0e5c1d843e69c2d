// Package onboarding writes the identity and preference records a reading
// session requires before it can activate.
package onboarding

import (
	"log/slog"
	"slices"
	"strings"

	readlogerrors "github.com/lepinkainen/readlog/internal/errors"
	"github.com/lepinkainen/readlog/internal/profile"
	"github.com/lepinkainen/readlog/internal/storage"
	"github.com/lepinkainen/readlog/internal/validation"
)

var validate = validation.New()

// Input is what the setup command collects from the user
type Input struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Genres    []string `json:"genres" validate:"max=20"`
	Frequency string   `json:"frequency" validate:"required,max=100"`
	Author    string   `json:"author" validate:"max=200"`
}

// Normalize trims every field and drops blank or repeated genres
func (in Input) Normalize() Input {
	out := Input{
		Name:      strings.TrimSpace(in.Name),
		Frequency: strings.TrimSpace(in.Frequency),
		Author:    strings.TrimSpace(in.Author),
	}
	for _, g := range in.Genres {
		g = strings.TrimSpace(g)
		if g != "" && !slices.Contains(out.Genres, g) {
			out.Genres = append(out.Genres, g)
		}
	}
	return out
}

// ParseGenres splits a comma separated genre list
func ParseGenres(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Input{Genres: strings.Split(s, ",")}.Normalize().Genres
}

// Setup validates the input and stores the user, preferences and intro flag.
func Setup(store storage.Store, in Input) error {
	in = in.Normalize()
	if err := validate.Validate("invalid setup", in); err != nil {
		return err
	}

	genres := in.Genres
	if genres == nil {
		genres = []string{}
	}

	if err := storage.SaveJSON(store, storage.KeyUser, profile.User{Name: in.Name}); err != nil {
		return readlogerrors.NewStorageError("save", storage.KeyUser, err)
	}
	prefs := profile.Preferences{Genres: genres, Frequency: in.Frequency, Author: in.Author}
	if err := storage.SaveJSON(store, storage.KeyPreferences, prefs); err != nil {
		return readlogerrors.NewStorageError("save", storage.KeyPreferences, err)
	}
	if err := storage.SaveJSON(store, storage.KeyHasSeenIntro, true); err != nil {
		return readlogerrors.NewStorageError("save", storage.KeyHasSeenIntro, err)
	}

	slog.Info("Saved reader profile", "name", in.Name, "genres", len(genres))
	return nil
}

// Current returns the stored setup, if any, so it can be edited
func Current(store storage.Store) (Input, bool, error) {
	user, ok, err := storage.LoadJSON[profile.User](store, storage.KeyUser)
	if err != nil || !ok {
		return Input{}, false, err
	}

	prefs, _, err := storage.LoadJSON[profile.Preferences](store, storage.KeyPreferences)
	if err != nil {
		return Input{}, false, err
	}

	return Input{
		Name:      user.Name,
		Genres:    prefs.Genres,
		Frequency: prefs.Frequency,
		Author:    prefs.Author,
	}, true, nil
}
