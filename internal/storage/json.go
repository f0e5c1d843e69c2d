package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// LoadJSON loads key and decodes it into T.
// A missing key and a blob that does not decode both yield ok == false;
// malformed data is logged and treated as absent. Only read failures are
// returned as errors.
func LoadJSON[T any](s Store, key string) (T, bool, error) {
	var zero T

	data, ok, err := s.Load(key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		slog.Warn("Ignoring malformed stored value", "key", key, "error", err)
		return zero, false, nil
	}
	return result, true, nil
}

// SaveJSON encodes value as JSON and stores it under key
func SaveJSON(s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Save(key, data)
}
