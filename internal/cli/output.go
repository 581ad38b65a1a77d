package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/download"
	"github.com/dgallion1/wikitext/internal/wikitext"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// styledProgress draws the download bar on a single rewriting line.
func styledProgress(w io.Writer) download.ProgressFunc {
	return func(p download.Progress) {
		if p.Done {
			fmt.Fprintf(w, "\r%s %s in %.2fs\n",
				successStyle.Render("downloaded"), formatBytes(p.Received), p.Elapsed.Seconds())
			return
		}
		f := p.Fraction()
		if f < 0 {
			fmt.Fprintf(w, "\r%s %s", dimStyle.Render("downloading"), formatBytes(p.Received))
			return
		}
		fmt.Fprintf(w, "\r%s %6.2f %% %s",
			barStyle.Render(download.Bar(f, 40, "█", "░")), 100*f,
			dimStyle.Render(formatBytes(p.Received)+" / "+formatBytes(p.Total)))
	}
}

// formatSummary renders paragraph, document and line counts per split.
func formatSummary(name string, splits map[dataset.Split][]wikitext.Paragraph) string {
	content := titleStyle.Render(name)
	for _, sp := range dataset.Splits {
		paragraphs, ok := splits[sp]
		if !ok {
			continue
		}
		content += fmt.Sprintf("\n%s %8d paragraphs %7d documents %9d lines",
			dimStyle.Render(fmt.Sprintf("%-5s", sp)),
			len(paragraphs),
			len(wikitext.Documents(paragraphs)),
			len(wikitext.Sentences(paragraphs)),
		)
	}
	return boxStyle.Render(content)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
