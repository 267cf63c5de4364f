package state

import (
	"log/slog"
	"os"
	"strings"
)

// Users returns every registered chat identity, in registration order.
func (s *Store) Users() []string {
	data, err := os.ReadFile(s.path(usersFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read users failed", slog.Any("error", err))
		}
		return nil
	}
	var users []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			users = append(users, line)
		}
	}
	return users
}

// AddUser registers a chat identity for future broadcasts. The registry is
// append-only and deduplicated; returns true when the identity was new.
func (s *Store) AddUser(chatID string) bool {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return false
	}
	for _, known := range s.Users() {
		if known == chatID {
			return false
		}
	}
	f, err := os.OpenFile(s.path(usersFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Warn("append user failed", slog.Any("error", err))
		return false
	}
	defer f.Close()
	if _, err := f.WriteString(chatID + "\n"); err != nil {
		s.logger.Warn("append user failed", slog.Any("error", err))
		return false
	}
	return true
}

// LastUsers returns up to n of the most recently registered identities.
func (s *Store) LastUsers(n int) []string {
	users := s.Users()
	if len(users) <= n {
		return users
	}
	return users[len(users)-n:]
}
