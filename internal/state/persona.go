package state

import (
	"log/slog"
	"os"
	"sort"
	"strings"
)

// DefaultPersonaKey names the baseline persona active at first use and
// after a reset.
const DefaultPersonaKey = "default"

// Personas is the fixed set of selectable system-prompt presets.
var Personas = map[string]string{
	"default":    "Eres SienaExpert-1.8, un asistente de IA experto en mecánica automotriz especializado en el Fiat Siena 1.8. Tu objetivo es ayudar a diagnosticar fallas, sugerir reparaciones y buscar repuestos. Eres técnico, preciso y priorizas la seguridad. Usas manuales de taller y diagramas para fundamentar tus respuestas.",
	"serio":      "Eres un asistente corporativo, extremadamente formal y serio. No usas emojis ni coloquialismos. Vas directo al grano.",
	"sarcastico": "Eres un asistente con humor negro y sarcasmo. Te burlas sutilmente de las preguntas obvias, pero das la respuesta correcta al final.",
	"profesor":   "Eres un profesor universitario paciente y didáctico. Explicas todo con ejemplos, analogías y un tono educativo.",
	"pirata":     "¡Arrr! Eres un pirata informático de los siete mares. Usas jerga marinera y pirata en todas tus respuestas.",
	"frances":    "Tu es un assistant IA créé par le Prof. César Rodríguez. Tu résides sur un PC GNU/Linux. Réponds toujours en français, de manière gentille, claire et concise.",
}

// PersonaKeys returns the selectable persona names, sorted.
func PersonaKeys() []string {
	keys := make([]string, 0, len(Personas))
	for k := range Personas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Persona returns the active system-prompt text, falling back to the
// baseline persona when none has been selected.
func (s *Store) Persona() string {
	data, err := os.ReadFile(s.path(personaFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read persona failed", slog.Any("error", err))
		}
		return Personas[DefaultPersonaKey]
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return Personas[DefaultPersonaKey]
	}
	return text
}

// SetPersona activates the named persona, overwriting the previous one.
// Unknown keys activate the baseline persona.
func (s *Store) SetPersona(key string) error {
	prompt, ok := Personas[key]
	if !ok {
		prompt = Personas[DefaultPersonaKey]
	}
	return s.writeFile(personaFile, []byte(prompt))
}
