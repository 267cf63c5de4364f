// Package classify turns one normalized inbound message into exactly one
// category: a media notification, a recognized slash command, a greeting,
// or free-form chat. Classification is pure and total; unmatched slash
// tokens are treated as chat, not as errors.
package classify

import "strings"

// Media sentinel prefixes emitted by the transport for non-text updates.
const (
	photoSentinel    = "__PHOTO__:"
	documentSentinel = "__DOCUMENT__:"
	voiceSentinel    = "__VOICE__:"

	payloadDelimiter = "|||"
)

// DefaultPhotoPrompt is the caption used when a photo arrives without one.
const DefaultPhotoPrompt = "Describe qué ves en esta imagen."

// Kind is the top-level category of a message.
type Kind int

const (
	KindChat Kind = iota
	KindMedia
	KindCommand
	KindGreeting
)

// MediaKind discriminates the three media notification sentinels.
type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaDocument MediaKind = "document"
	MediaVoice    MediaKind = "voice"
)

// GreetingKind discriminates courtesy phrases.
type GreetingKind string

const (
	GreetingWelcome GreetingKind = "welcome"
	GreetingThanks  GreetingKind = "thanks"
)

// Media carries the parsed payload of a media notification.
type Media struct {
	Kind     MediaKind
	FileID   string
	FileName string
	Caption  string
}

// Command carries a recognized slash command with its raw argument blob.
type Command struct {
	// Name is the canonical command name, regardless of which alias matched.
	Name string
	Arg  string
}

// Result is the classification of one message.
type Result struct {
	Kind     Kind
	Media    *Media
	Command  *Command
	Greeting GreetingKind
	// Text is the original message, kept for the chat fallthrough.
	Text string
}

// Spec describes one command in the routing table: its canonical name, its
// accepted spellings, and the usage hint shown on validation failure.
type Spec struct {
	Name    string
	Aliases []string
	Usage   string
}

// Table is the full command vocabulary. Synonym spellings (typically the
// Spanish command and its English alias) route identically.
var Table = []Spec{
	{Name: "investigar", Aliases: []string{"/investigar", "/research"}, Usage: "⚠️ Uso: /investigar [tema]"},
	{Name: "reporte", Aliases: []string{"/reporte", "/report"}, Usage: "⚠️ Uso: /reporte [falla o componente automotriz]"},
	{Name: "recordatorio", Aliases: []string{"/recordatorio", "/remind"}, Usage: "⚠️ Uso: /recordatorio HH:MM Mensaje\nEj: `/recordatorio 08:00 Tomar antibiótico`"},
	{Name: "borrar_recordatorios", Aliases: []string{"/borrar_recordatorios", "/clear_reminders"}},
	{Name: "traducir", Aliases: []string{"/traducir", "/translate"}, Usage: "⚠️ Uso: /traducir [texto | nombre_archivo]"},
	{Name: "idioma", Aliases: []string{"/idioma", "/lang"}, Usage: "⚠️ Uso: /idioma [es/en]\nEj: `/idioma en` (para inglés)"},
	{Name: "resumir_archivo", Aliases: []string{"/resumir_archivo", "/summarize_file"}, Usage: "⚠️ Uso: /resumir_archivo [nombre_del_archivo_en_docs]"},
	{Name: "resumir", Aliases: []string{"/resumir", "/summarize"}, Usage: "⚠️ Uso: /resumir [url]"},
	{Name: "ingestar", Aliases: []string{"/ingestar", "/ingest"}, Usage: "⚠️ Uso: /ingestar [nombre_del_archivo_en_docs]\nEj: `/ingestar manual_siena.pdf`"},
	{Name: "biblioteca", Aliases: []string{"/biblioteca", "/library"}},
	{Name: "repuesto", Aliases: []string{"/repuesto", "/precio", "/part"}, Usage: "⚠️ Uso: /repuesto [nombre de la pieza]\nEj: `/repuesto sensor map siena 1.8`"},
	{Name: "scan", Aliases: []string{"/scan", "/obd"}, Usage: "⚠️ Uso: /scan [dtc|rpm|temp]\nEj: `/scan dtc` para ver códigos de error."},
	{Name: "mantenimiento", Aliases: []string{"/mantenimiento", "/servicio"}, Usage: "⚠️ Uso: /mantenimiento [kilometraje]\nEj: `/mantenimiento 60000`"},
	{Name: "recordar", Aliases: []string{"/recordar", "/remember"}, Usage: "⚠️ Uso: /recordar [dato a guardar]"},
	{Name: "memorias", Aliases: []string{"/memorias", "/memories"}},
	{Name: "olvidar", Aliases: []string{"/olvidar", "/forget"}, Usage: "⚠️ Uso: /olvidar [ID]"},
	{Name: "broadcast", Aliases: []string{"/broadcast", "/anuncio"}, Usage: "⚠️ Uso: /broadcast [mensaje para todos]"},
	{Name: "status", Aliases: []string{"/status"}},
	{Name: "usuarios", Aliases: []string{"/usuarios", "/users"}},
	{Name: "modo", Aliases: []string{"/modo"}, Usage: "Uso: `/modo [opcion]`"},
	{Name: "reiniciar", Aliases: []string{"/reiniciar", "/reset"}},
	{Name: "ayuda", Aliases: []string{"/ayuda", "/help"}},
	{Name: "py", Aliases: []string{"/py"}, Usage: "⚠️ Uso: /py [código]"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]*Spec {
	index := make(map[string]*Spec)
	for i := range Table {
		for _, alias := range Table[i].Aliases {
			index[alias] = &Table[i]
		}
	}
	return index
}

// Lookup resolves a canonical command name to its table entry.
func Lookup(name string) (Spec, bool) {
	for _, spec := range Table {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}

var welcomePhrases = map[string]bool{
	"hola":   true,
	"hola!":  true,
	"hi":     true,
	"hello":  true,
	"/start": true,
}

var thanksPhrases = map[string]bool{
	"gracias":   true,
	"gracias!":  true,
	"thanks":    true,
	"thank you": true,
}

// Classify maps one message (sender prefix already stripped) to exactly one
// category, checking media sentinels, the command table, and greeting
// phrases in that priority order.
func Classify(msg string) Result {
	if media, ok := parseMedia(msg); ok {
		return Result{Kind: KindMedia, Media: media, Text: msg}
	}

	if strings.HasPrefix(msg, "/") {
		token, arg := splitCommand(msg)
		if spec, ok := aliasIndex[token]; ok {
			return Result{
				Kind:    KindCommand,
				Command: &Command{Name: spec.Name, Arg: arg},
				Text:    msg,
			}
		}
	}

	lowered := strings.ToLower(strings.TrimSpace(msg))
	if welcomePhrases[lowered] {
		return Result{Kind: KindGreeting, Greeting: GreetingWelcome, Text: msg}
	}
	if thanksPhrases[lowered] {
		return Result{Kind: KindGreeting, Greeting: GreetingThanks, Text: msg}
	}

	return Result{Kind: KindChat, Text: msg}
}

func splitCommand(msg string) (token, arg string) {
	token, arg, found := strings.Cut(msg, " ")
	token = strings.ToLower(token)
	if !found {
		return token, ""
	}
	return token, strings.TrimSpace(arg)
}

func parseMedia(msg string) (*Media, bool) {
	switch {
	case strings.HasPrefix(msg, photoSentinel):
		parts := strings.Split(strings.TrimPrefix(msg, photoSentinel), payloadDelimiter)
		media := &Media{Kind: MediaPhoto, FileID: parts[0], Caption: DefaultPhotoPrompt}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			media.Caption = parts[1]
		}
		return media, true

	case strings.HasPrefix(msg, documentSentinel):
		parts := strings.Split(strings.TrimPrefix(msg, documentSentinel), payloadDelimiter)
		media := &Media{Kind: MediaDocument, FileID: parts[0]}
		if len(parts) > 1 {
			media.FileName = parts[1]
		}
		if len(parts) > 2 {
			media.Caption = parts[2]
		}
		return media, true

	case strings.HasPrefix(msg, voiceSentinel):
		return &Media{Kind: MediaVoice, FileID: strings.TrimPrefix(msg, voiceSentinel)}, true
	}
	return nil, false
}
