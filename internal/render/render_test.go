package render

import (
	"strings"
	"testing"

	"github.com/dgallion1/wikitext/internal/wikitext"
	"golang.org/x/net/html"
)

func sampleDoc() wikitext.Document {
	return wikitext.Document{
		Index: 0,
		Title: "Doc A",
		Paragraphs: []wikitext.Paragraph{
			{DocIndex: 0, Index: 0, Title: "Doc A", Depth: 1, Texts: []string{"line one", "line two"}},
			{DocIndex: 0, Index: 1, Title: "Doc A", Depth: 1, Texts: []string{"more <text>"}},
			{DocIndex: 0, Index: 2, Title: "Sub A.1", Depth: 2, Texts: []string{"nested line"}},
		},
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleDoc())
	want := "# Doc A\n\nline one\nline two\n\nmore \\<text\\>\n\n## Sub A.1\n\nnested line\n\n"
	if got != want {
		t.Errorf("unexpected markdown:\n got %q\nwant %q", got, want)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain words", "plain words"},
		{"a * b", `a \* b`},
		{"- dash start", `\- dash start`},
		{"12. numbered", `12\. numbered`},
		{"1 @.@ 5", "1 @.@ 5"},
		{"[link](x)", `\[link\](x)`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTML_Structure(t *testing.T) {
	out, err := HTML(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	counts := map[string]int{}
	var texts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			counts[n.Data]++
		}
		if n.Type == html.TextNode {
			texts = append(texts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if counts["h1"] != 1 || counts["h2"] != 1 || counts["p"] != 3 {
		t.Errorf("unexpected element counts: %v", counts)
	}
	if counts["text"] != 0 {
		t.Error("escaped angle brackets must not become an element")
	}
	if !strings.Contains(strings.Join(texts, ""), "more <text>") {
		t.Errorf("expected literal text to survive, got %q", texts)
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(sampleDoc(), "notty", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Doc A", "Sub A.1", "nested line"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in terminal output:\n%s", want, out)
		}
	}
}
