package state

import (
	"encoding/json"
	"log/slog"
	"os"
)

// VoiceConfig holds the language used when synthesizing spoken replies.
type VoiceConfig struct {
	VoiceLang string `json:"voice_lang"`
}

// Voice returns the voice configuration, with defaultLang applied when the
// file is absent, corrupt, or unset.
func (s *Store) Voice(defaultLang string) VoiceConfig {
	cfg := VoiceConfig{VoiceLang: defaultLang}
	data, err := os.ReadFile(s.path(voiceFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read voice config failed", slog.Any("error", err))
		}
		return cfg
	}
	var stored VoiceConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("voice config corrupt, using default", slog.Any("error", err))
		return cfg
	}
	if stored.VoiceLang != "" {
		cfg.VoiceLang = stored.VoiceLang
	}
	return cfg
}

// SetVoiceLang stores the voice language code.
func (s *Store) SetVoiceLang(code string) error {
	data, err := json.Marshal(VoiceConfig{VoiceLang: code})
	if err != nil {
		return err
	}
	return s.writeFile(voiceFile, data)
}
