// Package telegram implements the messaging transport on the Telegram Bot
// API. Non-text updates are encoded as sentinel-prefixed strings
// (__PHOTO__:, __DOCUMENT__:, __VOICE__:) so media flows through the same
// classification path as text.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Inbound is one received message: the sender chat identity and the
// normalized content string.
type Inbound struct {
	ChatID  string
	Content string
}

// Transport polls and sends through one Telegram bot account.
type Transport struct {
	bot     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
	http    *http.Client
	offset  int
}

// New connects to the Telegram Bot API with the given token. Outbound
// sends are throttled so broadcasts stay under the API flood limits.
func New(log *slog.Logger, token string) (*Transport, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "telegram"))
	_ = tgbotapi.SetLogger(&slogBotLogger{log: log})

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	log.Info("connected", slog.String("username", bot.Self.UserName))

	return &Transport{
		bot:    bot,
		logger: log,
		// ~25 msg/s global; Telegram caps bots around 30.
		limiter: rate.NewLimiter(rate.Limit(25), 5),
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Check polls for new updates and returns them in arrival order. The
// update offset advances past everything returned, acknowledged or not.
func (t *Transport) Check(ctx context.Context) ([]Inbound, error) {
	cfg := tgbotapi.NewUpdate(t.offset)
	cfg.Timeout = 1
	updates, err := t.bot.GetUpdates(cfg)
	if err != nil {
		return nil, fmt.Errorf("telegram: get updates: %w", err)
	}

	var inbound []Inbound
	for _, update := range updates {
		if update.UpdateID >= t.offset {
			t.offset = update.UpdateID + 1
		}
		if update.Message == nil {
			continue
		}
		content := encodeMessage(update.Message)
		if content == "" {
			continue
		}
		chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
		t.logger.Info("inbound received",
			slog.String("chat_id", chatID),
			slog.String("content", summarize(content)),
		)
		inbound = append(inbound, Inbound{ChatID: chatID, Content: content})
	}
	return inbound, nil
}

// Send delivers a Markdown-formatted text reply.
func (t *Transport) Send(ctx context.Context, chatID, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		// Malformed user-provided Markdown is the usual cause; retry plain.
		msg.ParseMode = ""
		if _, plainErr := t.bot.Send(msg); plainErr != nil {
			return fmt.Errorf("telegram: send: %w", plainErr)
		}
	}
	return nil
}

// SendDocument delivers a local file as a document attachment.
func (t *Transport) SendDocument(ctx context.Context, chatID, path, caption string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(id, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("telegram: send document: %w", err)
	}
	return nil
}

// SendPhoto delivers a local image file.
func (t *Transport) SendPhoto(ctx context.Context, chatID, path, caption string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(id, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := t.bot.Send(photo); err != nil {
		return fmt.Errorf("telegram: send photo: %w", err)
	}
	return nil
}

// SendVoice delivers a local audio file as a voice note.
func (t *Transport) SendVoice(ctx context.Context, chatID, path string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	voice := tgbotapi.NewVoice(id, tgbotapi.FilePath(path))
	if _, err := t.bot.Send(voice); err != nil {
		return fmt.Errorf("telegram: send voice: %w", err)
	}
	return nil
}

// Download fetches a remote file by its Telegram file id to dest.
func (t *Transport) Download(ctx context.Context, fileID, dest string) error {
	url, err := t.bot.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("telegram: resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: download: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("telegram: write %s: %w", dest, err)
	}
	return nil
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("telegram: chat id must be numeric, got %q", chatID)
	}
	return id, nil
}

func summarize(text string) string {
	const max = 60
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "…"
}
