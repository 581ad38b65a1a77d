package download

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 40

// TextProgress prints a single rewriting status line to w:
//
//	[##########------------------------------] (25.00 %)
func TextProgress(w io.Writer) ProgressFunc {
	return func(p Progress) {
		if p.Done {
			fmt.Fprintf(w, "\rDownloading has been finished. consumed %.2f seconds.\n", p.Elapsed.Seconds())
			return
		}
		f := p.Fraction()
		if f < 0 {
			fmt.Fprintf(w, "\r%d bytes", p.Received)
			return
		}
		fmt.Fprintf(w, "\r[%s] (%.2f %%)", Bar(f, barWidth, "#", "-"), 100*f)
	}
}

// Bar draws a width-cell bar with fraction f filled.
func Bar(f float64, width int, fill, empty string) string {
	done := int(f * float64(width))
	done = min(max(done, 0), width)
	return strings.Repeat(fill, done) + strings.Repeat(empty, width-done)
}
