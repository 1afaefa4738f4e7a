package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/stolasapp/barre/internal/storage/db"
)

// ErrNoSession is returned by [LoadSession] when no session has been saved.
const ErrNoSession Error = "not logged in"

// Error is an error type returned by the client.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Session is a logged-in identity: the account row returned at login time
// and the signed token that authenticates requests.
type Session struct {
	User  db.User `json:"user"`
	Token string  `json:"token"`
}

// SessionPath resolves the file the CLI persists its session to.
func SessionPath() (string, error) {
	return xdg.StateFile(filepath.Join("barre", "session.json"))
}

// LoadSession reads the persisted session. Returns [ErrNoSession] when no
// session file exists.
func LoadSession() (*Session, error) {
	path, err := SessionPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session path: %w", err)
	}
	bytes, err := os.ReadFile(path) //nolint:gosec // path comes from xdg
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(bytes, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file at %s: %w", path, err)
	}
	return &session, nil
}

// Save persists the session. The file holds a bearer token, so it is
// readable by the owner only.
func (s *Session) Save() error {
	path, err := SessionPath()
	if err != nil {
		return fmt.Errorf("failed to resolve session path: %w", err)
	}
	encoded, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session. Clearing an absent session is
// not an error.
func ClearSession() error {
	path, err := SessionPath()
	if err != nil {
		return fmt.Errorf("failed to resolve session path: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
