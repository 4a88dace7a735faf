// Package messages renders rule records into localized text using the
// golang.org/x/text message catalog.
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"globalint/internal/rules"
)

const (
	noteSuggested  = "note.suggested"
	noteCalledFrom = "note.called-from"
)

// Supported lists the catalog languages, the first one is the fallback.
var Supported = []language.Tag{language.English, language.Russian}

var (
	cat     = catalog.NewBuilder(catalog.Fallback(language.English))
	matcher = language.NewMatcher(Supported)
)

func init() {
	mustRegister(language.English, english, englishNotes)
	mustRegister(language.Russian, russian, russianNotes)
}

func mustRegister(tag language.Tag, templates map[rules.Template]string, notes map[string]string) {
	for key, msg := range templates {
		if err := cat.SetString(tag, string(key), msg); err != nil {
			panic(fmt.Errorf("register %s/%s: %w", tag, key, err))
		}
	}
	for key, msg := range notes {
		if err := cat.SetString(tag, key, msg); err != nil {
			panic(fmt.Errorf("register %s/%s: %w", tag, key, err))
		}
	}
}

// Renderer formats records in one language. Safe for concurrent use.
type Renderer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewRenderer picks the best supported language for lang ("", "en", "ru-RU"...).
// Unknown languages fall back to English.
func NewRenderer(lang string) *Renderer {
	tag := Match(lang)
	return &Renderer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Match resolves a user language string to a supported tag.
func Match(lang string) language.Tag {
	if lang == "" {
		return Supported[0]
	}
	parsed, err := language.Parse(lang)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Tag returns the language the renderer writes.
func (r *Renderer) Tag() language.Tag { return r.tag }

// Template renders one template with its interpolation values.
func (r *Renderer) Template(tpl rules.Template, args []string) string {
	fallback, ok := english[tpl]
	if !ok {
		return fmt.Sprintf("%s %v", tpl, args)
	}
	return r.printer.Sprintf(message.Key(string(tpl), fallback), toAny(args)...)
}

// Record renders the message of a rule record.
func (r *Renderer) Record(rec rules.Record) string {
	return r.Template(rec.Template, rec.Args)
}

// Suggested renders the "consider calling" note.
func (r *Renderer) Suggested(signature string) string {
	return r.printer.Sprintf(message.Key(noteSuggested, englishNotes[noteSuggested]), signature)
}

// CalledFrom renders the note attached to default-argument records.
func (r *Renderer) CalledFrom(caller string) string {
	return r.printer.Sprintf(message.Key(noteCalledFrom, englishNotes[noteCalledFrom]), caller)
}

func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
