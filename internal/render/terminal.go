package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	termAngleURLRe = regexp.MustCompile(`<(https?://[^\s>]+)>`)
	termURLRe      = regexp.MustCompile(`https?://[^\s<>\x1b]+`)
)

// Terminal renders the same whitelist of transforms as Message using
// terminal styles instead of HTML.
type Terminal struct {
	bold   lipgloss.Style
	italic lipgloss.Style
	link   lipgloss.Style
}

// NewTerminal builds a renderer on r. A nil r uses the default renderer.
func NewTerminal(r *lipgloss.Renderer) *Terminal {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Terminal{
		bold:   r.NewStyle().Bold(true),
		italic: r.NewStyle().Italic(true),
		link:   r.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
	}
}

// Render styles content for display. Control characters other than
// newline and tab are dropped so content cannot drive the terminal.
func (t *Terminal) Render(content string) string {
	s := stripControl(content)
	s = termAngleURLRe.ReplaceAllString(s, "$1")
	s = mdLinkRe.ReplaceAllString(s, "$1 ($2)")
	s = termURLRe.ReplaceAllStringFunc(s, func(u string) string {
		trimmed := strings.TrimRight(u, ".,:!?)")
		return t.link.Render(trimmed) + u[len(trimmed):]
	})
	s = boldRe.ReplaceAllStringFunc(s, func(m string) string {
		return t.bold.Render(m[2 : len(m)-2])
	})
	s = italicRe.ReplaceAllStringFunc(s, func(m string) string {
		return t.italic.Render(m[1 : len(m)-1])
	})
	return s
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		default:
			return r
		}
	}, s)
}

// Sanitize removes terminal control characters from text printed verbatim.
func Sanitize(s string) string {
	return stripControl(s)
}
