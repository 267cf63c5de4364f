package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestEncodeMessagePhoto(t *testing.T) {
	msg := &tgbotapi.Message{
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", FileSize: 100, Width: 90, Height: 90},
			{FileID: "big", FileSize: 9000, Width: 800, Height: 600},
		},
		Caption: "qué pieza es esta?",
	}
	assert.Equal(t, "__PHOTO__:big|||qué pieza es esta?", encodeMessage(msg))
}

func TestEncodeMessagePhotoWithoutCaption(t *testing.T) {
	msg := &tgbotapi.Message{
		Photo: []tgbotapi.PhotoSize{{FileID: "p1", FileSize: 10}},
	}
	assert.Equal(t, "__PHOTO__:p1|||", encodeMessage(msg))
}

func TestEncodeMessageDocument(t *testing.T) {
	msg := &tgbotapi.Message{
		Document: &tgbotapi.Document{FileID: "d7", FileName: "manual.pdf"},
		Caption:  "resumen por favor",
	}
	assert.Equal(t, "__DOCUMENT__:d7|||manual.pdf|||resumen por favor", encodeMessage(msg))
}

func TestEncodeMessageVoice(t *testing.T) {
	msg := &tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v3"}}
	assert.Equal(t, "__VOICE__:v3", encodeMessage(msg))
}

func TestEncodeMessagePlainText(t *testing.T) {
	msg := &tgbotapi.Message{Text: "  hola  "}
	assert.Equal(t, "hola", encodeMessage(msg))
}

func TestEncodeMessageIgnoredUpdate(t *testing.T) {
	msg := &tgbotapi.Message{}
	assert.Empty(t, encodeMessage(msg))
}

func TestPickPhotoPrefersLargest(t *testing.T) {
	photos := []tgbotapi.PhotoSize{
		{FileID: "a", Width: 100, Height: 100},
		{FileID: "b", Width: 400, Height: 300},
		{FileID: "c", Width: 200, Height: 200},
	}
	assert.Equal(t, "b", pickPhoto(photos).FileID)
}

func TestPickPhotoAreaBeatsFileSize(t *testing.T) {
	photos := []tgbotapi.PhotoSize{
		{FileID: "small-heavy", Width: 100, Height: 100, FileSize: 9000},
		{FileID: "large-unsized", Width: 800, Height: 600, FileSize: 0},
	}
	assert.Equal(t, "large-unsized", pickPhoto(photos).FileID)
}

func TestPickPhotoTieBrokenByFileSize(t *testing.T) {
	photos := []tgbotapi.PhotoSize{
		{FileID: "light", Width: 400, Height: 300, FileSize: 100},
		{FileID: "heavy", Width: 400, Height: 300, FileSize: 900},
	}
	assert.Equal(t, "heavy", pickPhoto(photos).FileID)
}

func TestSummarizeKeepsRuneBoundary(t *testing.T) {
	// Rune 60 is multibyte; a byte cut would split it.
	text := strings.Repeat("a", 59) + "ímpar y algo más de contexto"

	short := summarize(text)

	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, 61, utf8.RuneCountInString(short))

	assert.Equal(t, "hola", summarize("hola"))
}
