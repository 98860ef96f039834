package formatter

import (
	"strings"

	"github.com/desertthunder/spoconv/internal/models"
)

const (
	DefaultTemplate = models.TokenName + " - " + models.TokenArtist
	VideoTemplate   = models.TokenVideo
)

// Fields is anything that can supply a value for a placeholder token.
type Fields interface {
	Lookup(token string) (string, bool)
}

// SelectTemplate picks the per-track template.
//
// An explicit format wins; otherwise video resolution selects the bare URL and anything else gets
// "<name> - <artist>".
func SelectTemplate(format string, resolveVideo bool) string {
	switch {
	case format != "":
		return format
	case resolveVideo:
		return VideoTemplate
	default:
		return DefaultTemplate
	}
}

// Render substitutes every known token in template with its value from fields.
//
// Unknown tokens and stray '%' characters are copied through unchanged.
func Render(fields Fields, template string) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != '%' {
			next := strings.IndexByte(template[i:], '%')
			if next < 0 {
				b.WriteString(template[i:])
				break
			}
			b.WriteString(template[i : i+next])
			i += next
			continue
		}

		end := strings.IndexByte(template[i+1:], '%')
		if end >= 0 {
			token := template[i : i+end+2]
			if v, ok := fields.Lookup(token); ok {
				b.WriteString(v)
				i += len(token)
				continue
			}
		}

		b.WriteByte('%')
		i++
	}

	return b.String()
}

// RenderTrack renders fields with the template chosen by [SelectTemplate].
func RenderTrack(fields Fields, format string, resolveVideo bool) string {
	return Render(fields, SelectTemplate(format, resolveVideo))
}
