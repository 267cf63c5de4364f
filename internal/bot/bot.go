package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crodriguez/sienabot/internal/classify"
	"github.com/crodriguez/sienabot/internal/config"
	"github.com/crodriguez/sienabot/internal/state"
	"github.com/crodriguez/sienabot/internal/telegram"
	"github.com/crodriguez/sienabot/internal/tools"
)

const voiceReplyLimit = 500

// Bot is the single-threaded dispatch engine. One goroutine runs the
// whole cycle: poll, handle each message in order, fire due reminders,
// run the periodic health check, sleep.
type Bot struct {
	cfg   config.Config
	log   *slog.Logger
	store *state.Store

	transport Transport
	chat      Chat
	vision    Vision
	audio     Audio
	knowledge Knowledge
	search    Search
	diag      Diagnostics
	sandbox   Sandbox
	notes     Notes
	resources Resources

	lastHealth time.Time
	now        func() time.Time
}

func New(log *slog.Logger, cfg config.Config, store *state.Store, deps Deps) *Bot {
	b := &Bot{
		cfg:       cfg,
		log:       log.With(slog.String("component", "bot")),
		store:     store,
		transport: deps.Transport,
		chat:      deps.Chat,
		vision:    deps.Vision,
		audio:     deps.Audio,
		knowledge: deps.Knowledge,
		search:    deps.Search,
		diag:      deps.Diagnostics,
		sandbox:   deps.Sandbox,
		notes:     deps.Notes,
		resources: deps.Resources,
		now:       time.Now,
	}
	b.lastHealth = b.now()
	return b
}

// Run drives the dispatch loop until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("dispatch loop started",
		slog.Duration("poll_interval", b.cfg.Bot.PollInterval()),
		slog.Duration("health_interval", b.cfg.Bot.HealthInterval()))

	for {
		inbound, err := b.transport.Check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				b.log.Info("dispatch loop stopped")
				return nil
			}
			b.log.Warn("poll failed, backing off", slog.Any("error", err))
			if !b.sleep(ctx, b.cfg.Bot.Backoff()) {
				b.log.Info("dispatch loop stopped")
				return nil
			}
			continue
		}

		for _, in := range inbound {
			b.handleMessage(ctx, in)
		}

		b.reminderPass(ctx)
		b.healthPass(ctx)

		if !b.sleep(ctx, b.cfg.Bot.PollInterval()) {
			b.log.Info("dispatch loop stopped")
			return nil
		}
	}
}

// sleep waits for d or until ctx is cancelled. Returns false on cancel.
func (b *Bot) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// handleMessage classifies and fully handles one inbound message. Every
// failure path degrades to a reply; nothing here stops the loop.
func (b *Bot) handleMessage(ctx context.Context, in telegram.Inbound) {
	if b.store.AddUser(in.ChatID) {
		b.log.Info("new user registered", slog.String("chat_id", in.ChatID))
	}

	result := classify.Classify(in.Content)

	var reply string
	voiceTurn := false

	if result.Kind == classify.KindMedia && result.Media.Kind == classify.MediaVoice {
		transcript, errReply := b.transcribeVoice(ctx, in.ChatID, result.Media)
		switch {
		case errReply != "":
			reply = errReply
		case transcript == "":
			// No recognizable speech: treat the recording as a sound
			// to analyze, not as a command.
			voiceTurn = true
			reply = b.handleVoiceChat(ctx, "un ruido de motor no verbal, como un golpeteo o chillido")
		default:
			// The spoken text re-enters the same classification as
			// typed text, so voice can issue commands.
			voiceTurn = true
			result = classify.Classify(transcript)
			if result.Kind == classify.KindChat {
				reply = b.handleVoiceChat(ctx, transcript)
			}
		}
	}

	if reply == "" {
		reply = b.route(ctx, in.ChatID, result)
	}
	if reply == "" {
		return
	}

	if err := b.transport.Send(ctx, in.ChatID, reply); err != nil {
		b.log.Error("reply send failed",
			slog.String("chat_id", in.ChatID), slog.Any("error", err))
		return
	}
	if voiceTurn {
		b.sendVoiceReply(ctx, in.ChatID, reply)
	}
}

// sendVoiceReply synthesizes the textual reply and sends it as a voice
// note. Best effort: the text reply already went out.
func (b *Bot) sendVoiceReply(ctx context.Context, chatID, reply string) {
	spoken := cutRunes(reply, voiceReplyLimit)
	out := filepath.Join(b.store.Dir(), "respuesta_"+uuid.NewString()+".ogg")
	path, err := b.audio.Synthesize(ctx, spoken, b.voiceLangShort(), out)
	if err != nil {
		b.log.Warn("voice synthesis failed", slog.Any("error", err))
		return
	}
	if err := b.transport.SendVoice(ctx, chatID, path); err != nil {
		b.log.Warn("voice reply send failed", slog.Any("error", err))
	}
}

// notify sends an intermediate progress message without aborting the
// handler when the send fails.
func (b *Bot) notify(ctx context.Context, chatID, text string) {
	if err := b.transport.Send(ctx, chatID, text); err != nil {
		b.log.Warn("progress notice failed",
			slog.String("chat_id", chatID), slog.Any("error", err))
	}
}

// errReply turns a collaborator failure into a user-facing message,
// surfacing the gateway's own message when there is one.
func errReply(prefix string, err error) string {
	var te *tools.ToolError
	if errors.As(err, &te) {
		return fmt.Sprintf("%s: %s", prefix, te.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, err)
}

// reminderPass fires every reminder whose wall-clock minute matches now
// and which has not fired yet today, then persists the updated marks.
func (b *Bot) reminderPass(ctx context.Context) {
	reminders := b.store.Reminders()
	if len(reminders) == 0 {
		return
	}

	now := b.now()
	minute := now.Format("15:04")
	today := now.Format("2006-01-02")

	changed := false
	for i := range reminders {
		r := &reminders[i]
		if r.Time != minute || r.LastSent == today {
			continue
		}
		text := "⏰ *RECORDATORIO:*\n\n" + r.Message
		if err := b.transport.Send(ctx, r.ChatID, text); err != nil {
			b.log.Warn("reminder send failed",
				slog.String("chat_id", r.ChatID), slog.Any("error", err))
			continue
		}
		b.log.Info("reminder fired",
			slog.String("chat_id", r.ChatID), slog.String("time", r.Time))
		r.LastSent = today
		changed = true
	}
	if changed {
		if err := b.store.SaveReminders(reminders); err != nil {
			b.log.Error("reminder state save failed", slog.Any("error", err))
		}
	}
}

// healthPass checks system resources at most once per interval and
// alerts the operator when thresholds are exceeded.
func (b *Bot) healthPass(ctx context.Context) {
	now := b.now()
	if now.Sub(b.lastHealth) < b.cfg.Bot.HealthInterval() {
		return
	}
	b.lastHealth = now

	if b.cfg.Telegram.AdminChatID == "" {
		return
	}

	report, err := b.resources.Monitor(ctx)
	if err != nil {
		b.log.Warn("health check failed", slog.Any("error", err))
		return
	}
	if len(report.Alerts) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("🚨 *ALERTA DEL SISTEMA:*\n")
	for _, a := range report.Alerts {
		sb.WriteString("\n- " + a)
	}
	if err := b.transport.Send(ctx, b.cfg.Telegram.AdminChatID, sb.String()); err != nil {
		b.log.Error("admin alert send failed", slog.Any("error", err))
	}
}
