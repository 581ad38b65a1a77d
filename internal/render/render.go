package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/yuin/goldmark"
)

var (
	mdEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
		`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`,
		`#`, `\#`, `|`, `\|`, `~`, `\~`, `!`, `\!`,
	)
	// Line starts that Markdown would read as list items, setext underlines or
	// ordered lists.
	blockStart = regexp.MustCompile(`^([-+=]|\d+[.)])`)
)

// Escape makes s render literally as Markdown inline text.
func Escape(s string) string {
	s = mdEscaper.Replace(s)
	if m := blockStart.FindStringIndex(s); m != nil {
		s = s[:m[1]-1] + `\` + s[m[1]-1:]
	}
	return s
}

// Markdown renders a document with one heading per title change, at the
// heading depth recorded by the parser.
func Markdown(doc wikitext.Document) string {
	var b strings.Builder
	prevTitle, prevDepth := "", 0

	for _, p := range doc.Paragraphs {
		if p.Title != prevTitle || p.Depth != prevDepth {
			level := min(max(p.Depth, 1), 6)
			fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", level), Escape(p.Title))
			prevTitle, prevDepth = p.Title, p.Depth
		}
		for i, line := range p.Texts {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(Escape(line))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// HTML converts the Markdown rendering of doc with goldmark.
func HTML(doc wikitext.Document) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders doc for a terminal with glamour. An empty style picks one
// from the terminal background.
func Terminal(doc wikitext.Document, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(Markdown(doc))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
