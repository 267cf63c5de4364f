package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const payloadDelimiter = "|||"

// encodeMessage normalizes one Telegram message to the content string the
// dispatch loop consumes. Media messages become sentinel-prefixed strings
// carrying the file id and caption; plain text passes through unchanged.
// Returns "" for updates the bot ignores (stickers, locations, joins...).
func encodeMessage(msg *tgbotapi.Message) string {
	switch {
	case len(msg.Photo) > 0:
		photo := pickPhoto(msg.Photo)
		return "__PHOTO__:" + photo.FileID + payloadDelimiter + strings.TrimSpace(msg.Caption)

	case msg.Document != nil:
		return "__DOCUMENT__:" + msg.Document.FileID +
			payloadDelimiter + msg.Document.FileName +
			payloadDelimiter + strings.TrimSpace(msg.Caption)

	case msg.Voice != nil:
		return "__VOICE__:" + msg.Voice.FileID

	case msg.Audio != nil:
		// Audio files ride the voice path; the transcriber handles both.
		return "__VOICE__:" + msg.Audio.FileID

	default:
		return strings.TrimSpace(msg.Text)
	}
}

// pickPhoto selects the largest rendition Telegram offers for a photo,
// by pixel area, breaking ties on file size.
func pickPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		bestArea := best.Width * best.Height
		area := item.Width * item.Height
		if area > bestArea || (area == bestArea && item.FileSize > best.FileSize) {
			best = item
		}
	}
	return best
}
