// Package profile assembles the shareable reading profile: a summary of the
// reader, their preferences and collection statistics, the plain-text payload
// embedded in the QR code, and the QR image itself.
package profile

// User is the reader identity written by onboarding
type User struct {
	Name string `json:"name"`
}

// Preferences are the reader's stated tastes, written by onboarding.
// Genres keep the order in which they were chosen.
type Preferences struct {
	Genres    []string `json:"genres"`
	Frequency string   `json:"frequency"`
	Author    string   `json:"author"`
}

// Complete reports whether onboarding produced usable preferences
func (p Preferences) Complete() bool {
	return p.Frequency != ""
}
