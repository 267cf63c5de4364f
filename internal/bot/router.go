package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crodriguez/sienabot/internal/classify"
	"github.com/crodriguez/sienabot/internal/tools"
)

// handlerFunc handles one recognized command and returns the reply text.
type handlerFunc func(b *Bot, ctx context.Context, chatID, arg string) string

var handlers = map[string]handlerFunc{
	"investigar":           (*Bot).handleInvestigate,
	"reporte":              (*Bot).handleReport,
	"recordatorio":         (*Bot).handleReminder,
	"borrar_recordatorios": (*Bot).handleClearReminders,
	"traducir":             (*Bot).handleTranslate,
	"idioma":               (*Bot).handleLanguage,
	"resumir_archivo":      (*Bot).handleSummarizeFile,
	"resumir":              (*Bot).handleSummarizeURL,
	"ingestar":             (*Bot).handleIngest,
	"biblioteca":           (*Bot).handleLibrary,
	"repuesto":             (*Bot).handlePartSearch,
	"scan":                 (*Bot).handleScan,
	"mantenimiento":        (*Bot).handleMaintenance,
	"recordar":             (*Bot).handleRemember,
	"memorias":             (*Bot).handleMemories,
	"olvidar":              (*Bot).handleForget,
	"broadcast":            (*Bot).handleBroadcast,
	"status":               (*Bot).handleStatus,
	"usuarios":             (*Bot).handleUsers,
	"modo":                 (*Bot).handleMode,
	"reiniciar":            (*Bot).handleReset,
	"ayuda":                (*Bot).handleHelp,
	"py":                   (*Bot).handleSandbox,
}

// route resolves one classified message to its reply text.
func (b *Bot) route(ctx context.Context, chatID string, result classify.Result) string {
	switch result.Kind {
	case classify.KindMedia:
		switch result.Media.Kind {
		case classify.MediaPhoto:
			return b.handlePhoto(ctx, chatID, result.Media)
		case classify.MediaDocument:
			return b.handleDocument(ctx, chatID, result.Media)
		}
		return ""

	case classify.KindCommand:
		handler, ok := handlers[result.Command.Name]
		if !ok {
			return ""
		}
		b.log.Info("command dispatched",
			slog.String("chat_id", chatID),
			slog.String("command", result.Command.Name))
		return handler(b, ctx, chatID, result.Command.Arg)

	case classify.KindGreeting:
		if result.Greeting == classify.GreetingThanks {
			return "¡De nada! Estoy aquí para ayudar. 🤖"
		}
		return welcomeText

	default:
		return b.handleChat(ctx, result.Text)
	}
}

const welcomeText = "🔧 *¡Hola! Soy SienaExpert-1.8*\n\n" +
	"Soy tu asistente especializado en mecánica para Fiat Siena 1.8 (Motor GM / Magneti Marelli).\n\n" +
	"Puedo ayudarte con:\n" +
	"🚗 *Diagnóstico:* Dime qué síntomas tiene el auto.\n" +
	"📷 *Visión:* Envíame fotos de piezas dañadas.\n" +
	"🔊 *Audio:* Mándame una nota de voz con el ruido del motor.\n" +
	"📚 *Manuales:* Consulto especificaciones técnicas oficiales.\n\n" +
	"¿En qué puedo ayudarte hoy?"

// handleChat is the free-form fallthrough: one conversational query with
// the active persona and the server clock injected as context.
func (b *Bot) handleChat(ctx context.Context, msg string) string {
	system := b.store.Persona()
	system += fmt.Sprintf("\n[Contexto Temporal: Fecha y Hora actual del servidor: %s]",
		b.now().Format("2006-01-02 15:04:05"))

	content, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: msg, System: system})
	if err != nil {
		return errReply("⚠️ Error del Modelo", err)
	}
	return content
}

// handleVoiceChat analyzes free-form spoken input with a mechanic's-ear
// prompt: the transcript may be speech or a recording of the engine.
func (b *Bot) handleVoiceChat(ctx context.Context, transcript string) string {
	prompt := fmt.Sprintf(`Actúa como un mecánico experto con un oído muy entrenado. He recibido una nota de voz. La transcripción o descripción del sonido es: '%s'.

1.  Primero, determina si el audio es una persona hablando o un ruido de motor.
2.  Si es una persona hablando, responde a su pregunta directamente.
3.  Si parece ser un ruido de motor (o la transcripción está vacía), analiza el tipo de ruido. Basándote en tu conocimiento de sonidos de motor (golpeteos, chillidos, siseos), ¿cuáles son las 3 fallas más probables en un Fiat Siena 1.8? Enumera las posibles causas y qué debería revisar el usuario.`, transcript)

	if lang := b.voiceLangShort(); lang != "es" {
		prompt += fmt.Sprintf("\nIMPORTANT: The user is speaking in '%s'. You MUST respond in '%s', regardless of your default instructions.", lang, lang)
	}

	content, err := b.chat.Query(ctx, tools.ChatRequest{
		Prompt:      prompt,
		MemoryQuery: "ruido motor " + transcript,
	})
	if err != nil {
		return "❌ No pude analizar el sonido. Intenta grabar más cerca del motor y en un lugar silencioso."
	}
	return "🔊 *Análisis del Sonido:*\n\n" + content
}

// voiceLangShort returns the two-letter form of the configured voice
// language, for TTS and for instructing the model.
func (b *Bot) voiceLangShort() string {
	lang := b.store.Voice("es-ES").VoiceLang
	if len(lang) >= 2 {
		return strings.ToLower(lang[:2])
	}
	return "es"
}

func usage(name string) string {
	if spec, ok := classify.Lookup(name); ok && spec.Usage != "" {
		return spec.Usage
	}
	return "⚠️ Uso: /" + name
}
