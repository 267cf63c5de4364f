package state

import (
	"encoding/json"
	"log/slog"
	"os"
)

// Reminder is a daily alarm owned by one chat identity. LastSent holds the
// ISO date of the most recent fire; a reminder fires at most once per
// calendar day.
type Reminder struct {
	ChatID   string `json:"chat_id"`
	Time     string `json:"time"`
	Message  string `json:"message"`
	LastSent string `json:"last_sent"`
}

// Reminders loads the full reminder list. A missing or corrupt file yields
// an empty list.
func (s *Store) Reminders() []Reminder {
	data, err := os.ReadFile(s.path(remindersFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read reminders failed", slog.Any("error", err))
		}
		return nil
	}
	var reminders []Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		s.logger.Warn("reminders file corrupt, starting empty", slog.Any("error", err))
		return nil
	}
	return reminders
}

// SaveReminders replaces the reminder list in full.
func (s *Store) SaveReminders(reminders []Reminder) error {
	if reminders == nil {
		reminders = []Reminder{}
	}
	data, err := json.Marshal(reminders)
	if err != nil {
		return err
	}
	return s.writeFile(remindersFile, data)
}

// AppendReminder adds one reminder to the list.
func (s *Store) AppendReminder(r Reminder) error {
	return s.SaveReminders(append(s.Reminders(), r))
}

// DeleteRemindersFor removes every reminder owned by chatID and returns how
// many were removed. Individual deletion is not supported.
func (s *Store) DeleteRemindersFor(chatID string) (int, error) {
	reminders := s.Reminders()
	kept := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.ChatID != chatID {
			kept = append(kept, r)
		}
	}
	removed := len(reminders) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.SaveReminders(kept)
}
