package bot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/crodriguez/sienabot/internal/classify"
	"github.com/crodriguez/sienabot/internal/tools"
)

const documentLimit = 15000

func (b *Bot) handlePhoto(ctx context.Context, chatID string, media *classify.Media) string {
	b.log.Info("photo received", slog.String("chat_id", chatID))
	b.notify(ctx, chatID, "👀 Analizando imagen...")

	local := filepath.Join(b.store.Dir(), "foto_"+uuid.NewString()+".jpg")
	if err := b.transport.Download(ctx, media.FileID, local); err != nil {
		return errReply("❌ Error procesando foto", err)
	}

	description, err := b.vision.Analyze(ctx, local, media.Caption)
	if err != nil {
		return errReply("❌ Error analizando imagen", err)
	}
	return "👁️ *Análisis Visual:*\n" + description
}

func (b *Bot) handleDocument(ctx context.Context, chatID string, media *classify.Media) string {
	// Documents can arrive without a file name; generate one so the
	// download target never degenerates to the data dir itself.
	name := filepath.Base(media.FileName)
	if name == "." || name == "/" {
		name = "documento_" + uuid.NewString()
	}

	b.log.Info("document received",
		slog.String("chat_id", chatID), slog.String("file", name))
	b.notify(ctx, chatID, fmt.Sprintf("📂 Recibí `%s`. Leyendo contenido...", name))

	// Download into the data dir, which the sandbox mounts at /mnt/out.
	local := filepath.Join(b.store.Dir(), name)
	if err := b.transport.Download(ctx, media.FileID, local); err != nil {
		return errReply("❌ Error procesando documento", err)
	}

	res, err := b.sandbox.Execute(ctx, readFileCode("/mnt/out/"+name))
	if err != nil {
		return errReply("❌ Error leyendo el PDF", err)
	}
	content := res.Stdout
	if strings.TrimSpace(content) == "" {
		if res.Stderr != "" {
			return "❌ Error leyendo el PDF: " + res.Stderr
		}
		return "⚠️ El documento parece estar vacío o es una imagen escaneada sin texto (OCR no disponible en sandbox)."
	}
	content = truncate(content, documentLimit)

	prompt := fmt.Sprintf(`Actúa como un Experto en Mecánica Automotriz (SienaExpert). Analiza el siguiente documento técnico proporcionado por el usuario.

CONTEXTO DEL USUARIO: %s

CONTENIDO DEL DOCUMENTO:
%s

TAREA:
1. Resume los puntos técnicos principales.
2. Explica los términos complejos en lenguaje sencillo.
3. Si hay procedimientos o especificaciones, resáltalos.
4. IMPORTANTE: Termina con un disclaimer: "Nota: Soy una IA. Este análisis es informativo."
`, media.Caption, content)

	b.notify(ctx, chatID, "🧠 Analizando documento técnico...")

	analysis, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: prompt})
	if err != nil {
		return "❌ Error al analizar el documento con la IA."
	}
	return analysis
}

// transcribeVoice downloads and transcribes one voice note. It returns
// the transcript (possibly empty when no speech was recognized) or a
// ready user-facing error reply.
func (b *Bot) transcribeVoice(ctx context.Context, chatID string, media *classify.Media) (transcript, errorReply string) {
	b.log.Info("voice note received", slog.String("chat_id", chatID))
	b.notify(ctx, chatID, "👂 Escuchando el ruido del motor... Dame un momento para analizarlo.")

	local := filepath.Join(b.store.Dir(), "voz_"+uuid.NewString()+".ogg")
	if err := b.transport.Download(ctx, media.FileID, local); err != nil {
		return "", errReply("❌ No pude procesar el audio. Detalle", err)
	}

	text, err := b.audio.Transcribe(ctx, local)
	if err != nil {
		return "", errReply("❌ No pude procesar el audio. Detalle", err)
	}
	return strings.TrimSpace(text), ""
}
