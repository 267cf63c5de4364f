package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/crodriguez/sienabot/internal/state"
	"github.com/crodriguez/sienabot/internal/tools"
)

const contentLimit = 10000

// cutRunes shortens s to at most n runes. Replies and prompts are Spanish
// text, so cuts must never land inside a multibyte character.
func cutRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return cutRunes(s, limit) + "... (truncado)"
}

func (b *Bot) handleInvestigate(ctx context.Context, chatID, topic string) string {
	if topic == "" {
		return usage("investigar")
	}
	b.notify(ctx, chatID, fmt.Sprintf("🕵️‍♂️ Investigando sobre '%s'... dame unos segundos.", topic))

	results, err := b.search.Web(ctx, topic)
	if err != nil {
		return "❌ Error al ejecutar la herramienta de investigación."
	}

	var data strings.Builder
	for _, r := range results {
		fmt.Fprintf(&data, "- %s\n  %s\n  %s\n", r.Title, r.Link, r.Snippet)
	}

	prompt := fmt.Sprintf(`Considerando lo que ya sabes en tu memoria y los siguientes resultados de búsqueda sobre '%s', crea un resumen conciso para Telegram.

Resultados de Búsqueda:
---
%s`, topic, data.String())

	content, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: prompt, MemoryQuery: topic})
	if err != nil {
		return errReply("⚠️ Error del modelo", err)
	}
	return content
}

func (b *Bot) handleReport(ctx context.Context, chatID, topic string) string {
	if topic == "" {
		return usage("reporte")
	}
	b.notify(ctx, chatID, fmt.Sprintf("🔧 Iniciando investigación técnica sobre '%s'... Esto tomará unos segundos.", topic))

	query := fmt.Sprintf("fallas soluciones y reparación para %s automotriz", topic)
	results, err := b.search.Web(ctx, query)
	if err != nil {
		return "❌ Error en la fase de investigación (Búsqueda)."
	}

	var data strings.Builder
	for _, r := range results {
		fmt.Fprintf(&data, "- %s\n  %s\n  %s\n", r.Title, r.Link, r.Snippet)
	}

	prompt := fmt.Sprintf(`Actúa como un Experto en Mecánica Automotriz (SienaExpert).
Basado en los siguientes resultados de búsqueda, genera un REPORTE TÉCNICO DETALLADO en formato Markdown sobre '%s'.

Estructura sugerida:
1. 📋 Descripción del Componente/Falla
2. 🛠️ Síntomas Comunes
3. 🔧 Procedimientos de Diagnóstico y Reparación
4. ⚙️ Herramientas Necesarias
5. ⚠️ Precauciones de Seguridad

RESULTADOS DE BÚSQUEDA:
%s

IMPORTANTE:
Usa un tono técnico pero claro.
INCLUYE UN DISCLAIMER AL INICIO: "Nota: Soy una IA. Este reporte es informativo y no sustituye el manual oficial ni a un mecánico profesional."
`, topic, data.String())

	b.notify(ctx, chatID, "🧠 Analizando datos y redactando informe técnico...")

	content, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: prompt, MemoryQuery: topic})
	if err != nil {
		return "❌ Error al redactar el reporte con el modelo."
	}

	filename := "Reporte_Tecnico_" + safeFileToken(topic) + ".md"
	path := filepath.Join(b.cfg.Bot.DocsDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.log.Error("report write failed", slog.String("path", path), slog.Any("error", err))
		return errReply("❌ Error procesando el reporte", err)
	}

	preview := cutRunes(content, 400)
	return fmt.Sprintf("✅ *Reporte Generado Exitosamente*\n\nHe guardado el informe detallado en:\n`docs/%s`\n\nAquí tienes un resumen:\n\n%s...\n\n_(Lee el archivo completo en tu carpeta docs)_", filename, preview)
}

// safeFileToken keeps alphanumerics and replaces everything else with
// underscores, capped at 30 characters.
func safeFileToken(topic string) string {
	var sb strings.Builder
	for _, r := range topic {
		if sb.Len() >= 30 {
			break
		}
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func (b *Bot) handleReminder(ctx context.Context, chatID, arg string) string {
	timeStr, note, found := strings.Cut(arg, " ")
	if arg == "" || !found || strings.TrimSpace(note) == "" {
		return usage("recordatorio")
	}
	if !validClockTime(timeStr) {
		return "❌ Hora inválida. Usa formato 24h (HH:MM), ej: 14:30."
	}
	note = strings.TrimSpace(note)

	err := b.store.AppendReminder(state.Reminder{
		ChatID:  chatID,
		Time:    timeStr,
		Message: note,
	})
	if err != nil {
		return errReply("❌ Error guardando el recordatorio", err)
	}
	return fmt.Sprintf("✅ Recordatorio configurado.\nTe avisaré todos los días a las %s: '%s'.", timeStr, note)
}

func (b *Bot) handleClearReminders(ctx context.Context, chatID, arg string) string {
	removed, err := b.store.DeleteRemindersFor(chatID)
	if err != nil {
		return errReply("❌ Error eliminando recordatorios", err)
	}
	if removed == 0 {
		return "🤔 No tienes recordatorios configurados para borrar."
	}
	return "✅ Todos tus recordatorios han sido eliminados."
}

func (b *Bot) handleTranslate(ctx context.Context, chatID, arg string) string {
	if arg == "" {
		return usage("traducir")
	}

	// A bare file name refers to docs/ or the data dir; anything else is
	// translated as plain text.
	var target string
	for _, dir := range []string{b.cfg.Bot.DocsDir, b.store.Dir()} {
		candidate := filepath.Join(dir, arg)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			target = candidate
			break
		}
	}

	if target == "" {
		content, err := b.chat.Query(ctx, tools.ChatRequest{
			Prompt: "Traduce el siguiente texto al Español. Devuelve solo la traducción:\n\n" + arg,
		})
		if err != nil {
			return "❌ Error al traducir texto."
		}
		return "🇪🇸 *Traducción:*\n\n" + content
	}

	b.notify(ctx, chatID, fmt.Sprintf("⏳ Traduciendo `%s` al español...", arg))

	raw, err := os.ReadFile(target)
	if err != nil {
		return errReply("❌ Error al traducir archivo", err)
	}
	content, err := b.chat.Query(ctx, tools.ChatRequest{
		Prompt: "Traduce el siguiente texto al Español. Devuelve solo la traducción:\n\n" + truncate(string(raw), contentLimit),
	})
	if err != nil {
		return errReply("❌ Error al traducir archivo", err)
	}

	out := filepath.Join(b.store.Dir(), "traduccion_"+filepath.Base(arg)+".md")
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return errReply("❌ Error al traducir archivo", err)
	}
	if err := b.transport.SendDocument(ctx, chatID, out, "📄 Traducción al Español"); err != nil {
		return errReply("❌ Error al traducir archivo", err)
	}
	return "✅ Archivo traducido enviado."
}

var voiceLangs = map[string]string{
	"es": "es-ES",
	"en": "en-US",
	"fr": "fr-FR",
	"pt": "pt-BR",
}

func (b *Bot) handleLanguage(ctx context.Context, chatID, arg string) string {
	if arg == "" {
		return usage("idioma")
	}
	code, ok := voiceLangs[strings.ToLower(arg)]
	if !ok {
		code = "es-ES"
	}
	if err := b.store.SetVoiceLang(code); err != nil {
		return errReply("❌ Error guardando la configuración", err)
	}
	return fmt.Sprintf("✅ Idioma de voz cambiado a: `%s`.\nAhora te escucharé en ese idioma.", code)
}

func (b *Bot) handleSummarizeFile(ctx context.Context, chatID, filename string) string {
	if filename == "" {
		return usage("resumir_archivo")
	}
	b.notify(ctx, chatID, fmt.Sprintf("⏳ Leyendo y resumiendo `%s`...", filename))

	res, err := b.sandbox.Execute(ctx, readFileCode("/mnt/docs/"+filename))
	if err != nil {
		return fmt.Sprintf("❌ Error al leer el archivo `%s` desde el Sandbox:\n`%s`", filename, errDetail(err))
	}
	if strings.TrimSpace(res.Stdout) == "" {
		detail := res.Stderr
		if detail == "" {
			detail = "No se pudo leer el archivo."
		}
		return fmt.Sprintf("❌ Error al leer el archivo `%s` desde el Sandbox:\n`%s`", filename, detail)
	}

	prompt := fmt.Sprintf("Resume el siguiente documento llamado '%s':\n\n%s",
		filename, truncate(res.Stdout, contentLimit))
	content, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: prompt})
	if err != nil {
		return "❌ Error generando el resumen."
	}
	return content
}

// readFileCode builds the snippet run inside the sandbox to print a
// mounted file, going through pypdf for PDFs.
func readFileCode(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Sprintf("from pypdf import PdfReader; reader = PdfReader('%s'); print('\\n'.join([page.extract_text() for page in reader.pages]))", path)
	}
	return fmt.Sprintf("with open('%s', 'r', encoding='utf-8') as f: print(f.read())", path)
}

func errDetail(err error) string {
	var te *tools.ToolError
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

func (b *Bot) handleSummarizeURL(ctx context.Context, chatID, url string) string {
	if url == "" {
		return usage("resumir")
	}
	b.notify(ctx, chatID, fmt.Sprintf("⏳ Leyendo %s...", url))

	page, err := b.search.Scrape(ctx, url)
	if err != nil {
		// A bare file name is a common mistake here; point at the
		// command that reads local files.
		if !strings.Contains(url, "://") || strings.Contains(errDetail(err), "scheme") {
			parts := strings.Split(url, "/")
			filename := parts[len(parts)-1]
			return fmt.Sprintf("🤔 El comando `/resumir` es para URLs (ej: `https://...`).\n\nSi querías resumir el archivo local `%s`, el comando correcto es:\n`/resumir_archivo %s`", filename, filename)
		}
		return errReply("❌ Error leyendo la web", err)
	}

	prompt := "Resume el siguiente contenido web para Telegram:\n\n" + truncate(page, contentLimit)
	content, err := b.chat.Query(ctx, tools.ChatRequest{Prompt: prompt})
	if err != nil {
		return errReply("⚠️ Error del modelo", err)
	}
	return content
}

func (b *Bot) handleIngest(ctx context.Context, chatID, filename string) string {
	if filename == "" {
		return usage("ingestar")
	}
	b.notify(ctx, chatID, fmt.Sprintf("⏳ Procesando `%s` para mi base de conocimientos... Esto puede tardar.", filename))

	path := filepath.Join(b.cfg.Bot.DocsDir, filename)
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("❌ No encuentro el archivo `%s` en la carpeta `docs/`.", filename)
	}

	msg, err := b.knowledge.Ingest(ctx, path)
	if err != nil {
		return errReply("❌ Error durante la ingesta", err)
	}
	return "✅ ¡Conocimiento adquirido! " + msg
}

func (b *Bot) handleLibrary(ctx context.Context, chatID, arg string) string {
	b.notify(ctx, chatID, "📚 Consultando índice de documentos...")

	docs, err := b.knowledge.List(ctx)
	if err != nil {
		return errReply("❌ Error consultando biblioteca", err)
	}
	if len(docs) == 0 {
		return "📭 No hay documentos PDF ingestados aún."
	}
	lines := make([]string, 0, len(docs))
	for _, d := range docs {
		lines = append(lines, fmt.Sprintf("📄 `%s`", d.Name))
	}
	return "📚 *Documentos en Memoria:*\n\n" + strings.Join(lines, "\n")
}

func (b *Bot) handlePartSearch(ctx context.Context, chatID, part string) string {
	if part == "" {
		return usage("repuesto")
	}
	b.notify(ctx, chatID, fmt.Sprintf("🔍 Buscando precios para *%s*...", part))

	items, err := b.search.Parts(ctx, part, b.cfg.Bot.PartsRegion)
	if err != nil {
		return "❌ Error al conectar con el buscador de repuestos."
	}
	if len(items) == 0 {
		return "❌ No encontré resultados disponibles en línea para esa pieza."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 *Repuestos encontrados para: %s*\n\n", part)
	for i, item := range items {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, item.Title)
	}
	return sb.String()
}

func (b *Bot) handleScan(ctx context.Context, chatID, arg string) string {
	kind := tools.ScanKind(arg)
	if arg == "" {
		kind = tools.ScanDTC
	}
	if kind != tools.ScanDTC && kind != tools.ScanRPM && kind != tools.ScanTemp {
		return usage("scan")
	}
	b.notify(ctx, chatID, "🔌 Conectando al auto (simulador)...")

	data, err := b.diag.Simulate(ctx, kind)
	if err != nil {
		return errReply("❌ Error durante el escaneo", err)
	}

	switch kind {
	case tools.ScanRPM:
		return fmt.Sprintf("📊 *Datos del Motor:*\n\n*RPM en ralentí:* %d revoluciones por minuto.", data.RPM)
	case tools.ScanTemp:
		return fmt.Sprintf("🌡️ *Datos del Motor:*\n\n*Temperatura del refrigerante:* %g °C.", data.CoolantTemp)
	}

	if len(data.Codes) == 0 {
		return "✅ *Diagnóstico OBD-II:*\n\nNo se encontraron códigos de error (DTC) en la ECU. ¡Todo en orden!"
	}

	codes := make([]string, 0, len(data.Codes))
	for code := range data.Codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var sb strings.Builder
	sb.WriteString("🚨 *Diagnóstico OBD-II:*\n\nSe encontraron los siguientes códigos de error:\n\n")
	for _, code := range codes {
		fmt.Fprintf(&sb, "• *%s*: %s\n", code, data.Codes[code])
	}

	// Auto-resolution: look the first code up in the ingested manuals.
	first := codes[0]
	b.notify(ctx, chatID, fmt.Sprintf("📖 Buscando solución en el manual para *%s*...", first))

	prompt := fmt.Sprintf("El escáner OBD-II indica el código %s. Según el manual de taller del Fiat Siena 1.8, ¿cuáles son las causas y el procedimiento de reparación?", first)
	content, err := b.chat.Query(ctx, tools.ChatRequest{
		Prompt:      prompt,
		MemoryQuery: first + " siena",
	})
	if err == nil {
		fmt.Fprintf(&sb, "\n🛠️ *Solución Sugerida (Manual):*\n%s", content)
	}
	return sb.String()
}

func (b *Bot) handleMaintenance(ctx context.Context, chatID, arg string) string {
	kmStr := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(arg))
	km, err := strconv.Atoi(kmStr)
	if kmStr == "" || err != nil || km < 0 {
		return usage("mantenimiento")
	}
	b.notify(ctx, chatID, fmt.Sprintf("🗓️ Calculando plan de mantenimiento para *%s km*...", formatThousands(km)))

	prompt := fmt.Sprintf("Actúa como un asesor de servicio técnico de Fiat. Basado en el manual de taller del Fiat Siena 1.8 y el conocimiento general de su motor GM, ¿qué servicio de mantenimiento le corresponde a un vehículo con %d km? Detalla los puntos a revisar o reemplazar (ej. aceite, filtros, correa de distribución, bujías, etc.).", km)

	content, err := b.chat.Query(ctx, tools.ChatRequest{
		Prompt:      prompt,
		MemoryQuery: fmt.Sprintf("mantenimiento servicio %d km", km),
	})
	if err != nil {
		return "❌ No pude generar el plan de mantenimiento."
	}
	return fmt.Sprintf("⚙️ *Plan de Mantenimiento para %s km:*\n\n%s", formatThousands(km), content)
}

func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

func (b *Bot) handleRemember(ctx context.Context, chatID, text string) string {
	if text == "" {
		return usage("recordar")
	}
	b.notify(ctx, chatID, "💾 Guardando nota...")

	if err := b.notes.Save(ctx, text, "telegram_note"); err != nil {
		return errReply("❌ Error al guardar la nota", err)
	}
	return "✅ Nota guardada en memoria a largo plazo."
}

func (b *Bot) handleMemories(ctx context.Context, chatID, arg string) string {
	b.notify(ctx, chatID, "🧠 Consultando base de datos...")

	notes, err := b.notes.List(ctx, 5)
	if err != nil {
		return "❌ Error al consultar la memoria."
	}
	if len(notes) == 0 {
		return "📭 No tengo recuerdos guardados aún."
	}

	var sb strings.Builder
	sb.WriteString("🧠 *Últimos recuerdos:*\n")
	for _, n := range notes {
		date := strings.Replace(n.Timestamp, "T", " ", 1)
		if i := strings.IndexByte(date, '.'); i >= 0 {
			date = date[:i]
		}
		fmt.Fprintf(&sb, "🆔 `%s`\n📅 %s: %s\n\n", n.ID, date, n.Content)
	}
	return sb.String()
}

func (b *Bot) handleForget(ctx context.Context, chatID, id string) string {
	if id == "" {
		return usage("olvidar")
	}
	if err := b.notes.Delete(ctx, id); err != nil {
		return errReply("❌ Error al eliminar", err)
	}
	return "✅ Recuerdo eliminado."
}

func (b *Bot) handleBroadcast(ctx context.Context, chatID, announcement string) string {
	if announcement == "" {
		return usage("broadcast")
	}
	users := b.store.Users()
	if len(users) == 0 {
		return "⚠️ No tengo usuarios registrados aún."
	}

	count := 0
	for _, uid := range users {
		if err := b.transport.Send(ctx, uid, "📢 *ANUNCIO:*\n"+announcement); err != nil {
			b.log.Warn("broadcast send failed",
				slog.String("chat_id", uid), slog.Any("error", err))
			continue
		}
		count++
	}
	return fmt.Sprintf("✅ Mensaje enviado a %d usuarios.", count)
}

func (b *Bot) handleStatus(ctx context.Context, chatID, arg string) string {
	b.notify(ctx, chatID, "🔍 Escaneando sistema...")

	report, err := b.resources.Monitor(ctx)
	if err != nil {
		return "❌ Error al obtener métricas."
	}

	statusEmoji := "✅"
	if len(report.Alerts) > 0 {
		statusEmoji = "⚠️"
	}
	m := report.Metrics
	reply := fmt.Sprintf("%s *Estado del Servidor:*\n\n💻 *CPU:* %g%%\n🧠 *RAM:* %g%% (%gGB / %gGB)\n💾 *Disco:* %g%% (Libre: %gGB)\n",
		statusEmoji, m.CPUPercent, m.MemoryPercent, m.MemoryUsedGB, m.MemoryTotalGB, m.DiskPercent, m.DiskFreeGB)
	if len(report.Alerts) > 0 {
		lines := make([]string, 0, len(report.Alerts))
		for _, a := range report.Alerts {
			lines = append(lines, "- "+a)
		}
		reply += "\n🚨 *Alertas:*\n" + strings.Join(lines, "\n")
	}
	return reply
}

func (b *Bot) handleUsers(ctx context.Context, chatID, arg string) string {
	last := b.store.LastUsers(5)
	if len(last) == 0 {
		return "📭 No hay usuarios registrados."
	}
	lines := make([]string, 0, len(last))
	for _, u := range last {
		lines = append(lines, fmt.Sprintf("- `%s`", u))
	}
	return fmt.Sprintf("👥 *Últimos %d usuarios registrados:*\n%s", len(last), strings.Join(lines, "\n"))
}

func (b *Bot) handleMode(ctx context.Context, chatID, arg string) string {
	mode := strings.ToLower(strings.TrimSpace(arg))
	prompt, ok := state.Personas[mode]
	if !ok {
		keys := state.PersonaKeys()
		opts := make([]string, 0, len(keys))
		for _, k := range keys {
			opts = append(opts, "`"+k+"`")
		}
		return fmt.Sprintf("⚠️ Modo no reconocido.\nOpciones disponibles: %s\nUso: `/modo [opcion]`", strings.Join(opts, ", "))
	}
	if err := b.store.SetPersona(mode); err != nil {
		return errReply("❌ Error cambiando el modo", err)
	}
	return fmt.Sprintf("🎭 *Modo cambiado a:* %s\n\n_%s_", capitalize(mode), prompt)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (b *Bot) handleReset(ctx context.Context, chatID, arg string) string {
	if err := b.chat.Clear(ctx); err != nil {
		b.log.Warn("history clear failed", slog.Any("error", err))
	}
	if err := b.store.SetPersona(state.DefaultPersonaKey); err != nil {
		return errReply("❌ Error restableciendo la personalidad", err)
	}
	return "🔄 *Sistema reiniciado.*\n\n- Historial de conversación borrado.\n- Personalidad restablecida a 'Default'."
}

func (b *Bot) handleHelp(ctx context.Context, chatID, arg string) string {
	return helpText
}

const helpText = "🤖 *Comandos Disponibles:*\n\n" +
	"🔹 `/investigar [tema]`: Busca en internet y resume.\n" +
	"🔹 `/reporte [tema]`: Genera un informe técnico detallado en docs/.\n" +
	"🔹 `/recordatorio [hora] [msg]`: Configura una alarma diaria.\n" +
	"🔹 `/traducir [texto/archivo]`: Traduce al español.\n" +
	"🔹 `/idioma [es/en]`: Cambia el idioma en el que te escucho.\n" +
	"🔹 `/borrar_recordatorios`: Elimina todas tus alarmas.\n" +
	"🔹 `/resumir [url]`: Lee una web y te dice de qué trata.\n" +
	"🔹 `/resumir_archivo [nombre]`: Lee un archivo de `docs/` y lo resume.\n" +
	"🔹 `/ingestar [archivo]`: Lee un PDF de `docs/` y lo añade a mi memoria (RAG).\n" +
	"🔹 `/repuesto [pieza]`: Busca precios y disponibilidad en MercadoLibre.\n" +
	"🔹 `/scan [dtc|rpm|temp]`: Simula un escaneo OBD-II del auto.\n" +
	"🔹 `/mantenimiento [km]`: Sugiere el servicio según el kilometraje.\n" +
	"🔹 `/recordar [dato]`: Guarda una nota en mi memoria.\n" +
	"🔹 `/memorias`: Lista tus últimos recuerdos guardados.\n" +
	"🔹 `/olvidar [ID]`: Borra un recuerdo específico.\n" +
	"🔹 `/status`: Muestra CPU y RAM del servidor.\n" +
	"🔹 `/usuarios`: Muestra los últimos 5 IDs registrados.\n" +
	"🔹 `/modo [tipo]`: Cambia mi personalidad (serio, sarcastico, profesor...).\n" +
	"🔹 `/reiniciar`: Borra historial y restablece personalidad.\n" +
	"🔹 `/broadcast [msg]`: Envía un mensaje a todos (Admin).\n" +
	"🔹 `/ayuda`: Muestra este menú.\n\n" +
	"🔹 *Chat normal*: Háblame y te responderé."

func (b *Bot) handleSandbox(ctx context.Context, chatID, code string) string {
	if code == "" {
		return usage("py")
	}
	b.log.Info("sandbox execution requested", slog.String("chat_id", chatID))

	res, err := b.sandbox.Execute(ctx, code)
	if err != nil {
		return "❌ *Error en Sandbox:*\n" + errDetail(err)
	}

	// Lines naming files under the sandbox output mount are delivered
	// as photos instead of text, when the file landed in the data dir.
	sentFile := false
	var kept []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		candidate := strings.TrimSpace(line)
		if strings.HasPrefix(candidate, "/mnt/out/") {
			local := filepath.Join(b.store.Dir(), filepath.Base(candidate))
			if _, statErr := os.Stat(local); statErr == nil {
				if sendErr := b.transport.SendPhoto(ctx, chatID, local, "Archivo generado por el Sandbox."); sendErr != nil {
					b.log.Warn("sandbox artifact send failed", slog.Any("error", sendErr))
				} else {
					sentFile = true
					continue
				}
			}
		}
		kept = append(kept, line)
	}
	stdout := strings.TrimSpace(strings.Join(kept, "\n"))

	if stdout == "" && res.Stderr == "" {
		if sentFile {
			return ""
		}
		return "📦 *Resultado del Sandbox:*\n\n_El código se ejecutó sin producir salida._"
	}

	reply := "📦 *Resultado del Sandbox:*\n\n"
	if stdout != "" {
		reply += fmt.Sprintf("*Salida:*\n```\n%s\n```\n", stdout)
	}
	if res.Stderr != "" {
		reply += fmt.Sprintf("*Errores:*\n```\n%s\n```\n", res.Stderr)
	}
	return reply
}

// validClockTime reports whether s is a 24h HH:MM wall-clock time.
func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}
