// Package store implements the persistent key-value collaborator the
// application writes its state through. Exactly three logical keys exist;
// malformed or missing values always read as "no value" so callers fall back
// to their built-in defaults.
package store

import (
	"context"
	"encoding/json"
)

// Logical keys. No other key is ever written.
const (
	KeyPatients    = "patients"
	KeyUserProfile = "userProfile"
	KeyDarkMode    = "darkMode"
)

// Store is the persistent key-value contract.
//
// Load returns the raw stored payload and whether a usable value existed.
// Drivers only fail with real I/O errors; absent keys are (nil, false, nil).
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// envelope versions stored values defensively. The source format had no
// versioning; v1 wraps the value so future format changes can fail open.
type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

const envelopeVersion = 1

// Encode wraps a value in the current envelope and serializes it.
func Encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: envelopeVersion, Data: data})
}

// Decode unwraps an envelope into out. It reports false (not an error) for
// malformed payloads or unknown versions: storage parse failures must fail
// open to defaults, never surface.
func Decode(raw []byte, out interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != envelopeVersion {
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false
	}
	return true
}

// LoadJSON loads key and decodes it into out, reporting whether a usable
// value was found. I/O errors are also treated as absence: the store is a
// best-effort collaborator, and every caller has a default.
func LoadJSON(ctx context.Context, s Store, key string, out interface{}) bool {
	raw, ok, err := s.Load(ctx, key)
	if err != nil || !ok {
		return false
	}
	return Decode(raw, out)
}

// SaveJSON encodes value into the envelope and saves it under key.
func SaveJSON(ctx context.Context, s Store, key string, value interface{}) error {
	raw, err := Encode(value)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, raw)
}
