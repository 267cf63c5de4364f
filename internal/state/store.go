// Package state persists the bot's small process-wide records: registered
// users, daily reminders, the active persona, and the voice configuration.
//
// Every record set lives in its own flat file under the data directory and
// is read fully before use and written back in full after mutation. The
// dispatch loop is the only writer, so no locking is needed. Unreadable or
// corrupt files are treated as empty state, never as a fatal error.
package state

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	usersFile     = "telegram_users.txt"
	remindersFile = "telegram_reminders.json"
	personaFile   = "telegram_persona.txt"
	voiceFile     = "telegram_config.json"
)

// Store reads and writes the persisted bot state under a data directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(log *slog.Logger, dir string) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:    dir,
		logger: log.With(slog.String("component", "state")),
	}, nil
}

// Dir returns the data directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// writeFile replaces a state file in full.
func (s *Store) writeFile(name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o644)
}
