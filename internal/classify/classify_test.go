package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPhotoWithCaption(t *testing.T) {
	res := Classify("__PHOTO__:abc123|||describe this")

	require.Equal(t, KindMedia, res.Kind)
	require.NotNil(t, res.Media)
	assert.Equal(t, MediaPhoto, res.Media.Kind)
	assert.Equal(t, "abc123", res.Media.FileID)
	assert.Equal(t, "describe this", res.Media.Caption)
}

func TestClassifyPhotoWithoutCaptionGetsDefault(t *testing.T) {
	res := Classify("__PHOTO__:abc123")

	require.Equal(t, KindMedia, res.Kind)
	assert.Equal(t, "abc123", res.Media.FileID)
	assert.Equal(t, DefaultPhotoPrompt, res.Media.Caption)

	// A blank caption after the delimiter also falls back.
	res = Classify("__PHOTO__:abc123|||   ")
	assert.Equal(t, DefaultPhotoPrompt, res.Media.Caption)
}

func TestClassifyDocumentPayload(t *testing.T) {
	res := Classify("__DOCUMENT__:f9|||manual_siena.pdf|||revisa el capítulo 3")

	require.Equal(t, KindMedia, res.Kind)
	assert.Equal(t, MediaDocument, res.Media.Kind)
	assert.Equal(t, "f9", res.Media.FileID)
	assert.Equal(t, "manual_siena.pdf", res.Media.FileName)
	assert.Equal(t, "revisa el capítulo 3", res.Media.Caption)
}

func TestClassifyVoicePayload(t *testing.T) {
	res := Classify("__VOICE__:v42")

	require.Equal(t, KindMedia, res.Kind)
	assert.Equal(t, MediaVoice, res.Media.Kind)
	assert.Equal(t, "v42", res.Media.FileID)
}

func TestAliasesRouteToCanonicalName(t *testing.T) {
	tests := []struct {
		msg  string
		name string
		arg  string
	}{
		{"/recordatorio 08:00 tomar pastilla", "recordatorio", "08:00 tomar pastilla"},
		{"/remind 08:00 take the pill", "recordatorio", "08:00 take the pill"},
		{"/repuesto sensor map", "repuesto", "sensor map"},
		{"/precio sensor map", "repuesto", "sensor map"},
		{"/part sensor map", "repuesto", "sensor map"},
		{"/obd rpm", "scan", "rpm"},
		{"/ayuda", "ayuda", ""},
		{"/HELP", "ayuda", ""},
	}
	for _, tt := range tests {
		res := Classify(tt.msg)
		require.Equal(t, KindCommand, res.Kind, "msg=%q", tt.msg)
		assert.Equal(t, tt.name, res.Command.Name, "msg=%q", tt.msg)
		assert.Equal(t, tt.arg, res.Command.Arg, "msg=%q", tt.msg)
	}
}

func TestUnknownSlashTokenFallsThroughToChat(t *testing.T) {
	res := Classify("/flyme to the moon")
	assert.Equal(t, KindChat, res.Kind)
	assert.Nil(t, res.Command)
}

func TestGreetings(t *testing.T) {
	for _, msg := range []string{"hola", "Hola!", "HELLO", "/start"} {
		res := Classify(msg)
		require.Equal(t, KindGreeting, res.Kind, "msg=%q", msg)
		assert.Equal(t, GreetingWelcome, res.Greeting)
	}
	for _, msg := range []string{"gracias", "Thank You"} {
		res := Classify(msg)
		require.Equal(t, KindGreeting, res.Kind, "msg=%q", msg)
		assert.Equal(t, GreetingThanks, res.Greeting)
	}
}

func TestFreeFormTextIsChat(t *testing.T) {
	res := Classify("el auto tiembla en ralentí")
	assert.Equal(t, KindChat, res.Kind)
	assert.Equal(t, "el auto tiembla en ralentí", res.Text)
}

func TestEveryAliasIsUnique(t *testing.T) {
	seen := map[string]string{}
	for _, spec := range Table {
		for _, alias := range spec.Aliases {
			if prev, dup := seen[alias]; dup {
				t.Fatalf("alias %q claimed by %q and %q", alias, prev, spec.Name)
			}
			seen[alias] = spec.Name
		}
	}
}
