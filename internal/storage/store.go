// Package storage provides the durable key-value port the reading session
// persists its state through.
package storage

// Keys used by readlog in durable storage.
const (
	KeyUser         = "user"
	KeyPreferences  = "preferences"
	KeyBooks        = "books"
	KeyHasSeenIntro = "hasSeenIntro"
)

// AllKeys lists every key readlog owns, in the order logout removes them.
var AllKeys = []string{KeyUser, KeyPreferences, KeyBooks, KeyHasSeenIntro}

// Store defines the interface for durable blob storage keyed by string
type Store interface {
	// Load returns the blob stored under key. ok is false when the key is absent.
	Load(key string) (data []byte, ok bool, err error)

	// Save stores data under key, replacing any previous value
	Save(key string, data []byte) error

	// Remove deletes the given keys. Missing keys are not an error.
	Remove(keys ...string) error

	// Close releases the underlying resources
	Close() error
}
