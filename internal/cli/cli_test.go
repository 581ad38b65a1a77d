package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/wikitext"
)

const tokens = " = Doc A = \n line one \n line two \n \n = = Sub A.1 = = \n nested line \n \n = Doc B = \n another line \n"

// setup serves a wikitext-2 archive and points the CLI config at it.
func setup(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, sp := range dataset.Splits {
		w, err := zw.Create("wikitext-2/wiki." + string(sp) + ".tokens")
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(tokens))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wikitext-2-v1.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WIKITEXT_CONFIG", "")
	t.Setenv("WIKITEXT_ROOT", root)
	t.Setenv("WIKITEXT_MIRROR", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PORT", "")
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values persist between executions of the shared command tree.
	loadSplit, loadJSON, sentencesSplit = "", false, "train"
	showSplit, showDoc, showPlain, showWidth = "train", 0, false, 100
	rootFlag, quiet = "", false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFetchCommand(t *testing.T) {
	root := setup(t)

	out, err := run(t, "fetch", "wikitext-2", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "wikitext-2 is installed") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "data", "wikitext-2", "wiki.test.tokens")); err != nil {
		t.Errorf("expected test split on disk: %v", err)
	}
}

func TestFetchCommand_UnknownName(t *testing.T) {
	setup(t)
	if _, err := run(t, "fetch", "wikitext-7"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestLoadCommand_JSONSplit(t *testing.T) {
	setup(t)

	out, err := run(t, "load", "wikitext-2", "--split", "valid", "--json", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var paragraphs []wikitext.Paragraph
	if err := json.Unmarshal([]byte(out), &paragraphs); err != nil {
		t.Fatalf("expected a JSON array: %v\n%s", err, out)
	}
	if len(paragraphs) != 3 || paragraphs[2].DocIndex != 1 {
		t.Errorf("unexpected paragraphs %+v", paragraphs)
	}
}

func TestLoadCommand_JSONAllSplits(t *testing.T) {
	setup(t)

	out, err := run(t, "load", "wikitext-2", "--json", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var splits map[string][]wikitext.Paragraph
	if err := json.Unmarshal([]byte(out), &splits); err != nil {
		t.Fatalf("expected a JSON object: %v", err)
	}
	if len(splits) != 3 {
		t.Errorf("expected train, valid and test, got %v", splits)
	}
}

func TestLoadCommand_Summary(t *testing.T) {
	setup(t)

	out, err := run(t, "load", "wikitext-2", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"wikitext-2", "train", "valid", "test", "paragraphs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestLoadCommand_BadSplit(t *testing.T) {
	setup(t)
	if _, err := run(t, "load", "wikitext-2", "--split", "dev"); err == nil {
		t.Fatal("expected error for unknown split")
	}
}

func TestSentencesCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "sentences", "wikitext-2", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "line one\nline two\nnested line\nanother line\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestShowCommand_Plain(t *testing.T) {
	setup(t)

	out, err := run(t, "show", "wikitext-2", "--doc", "1", "--plain", "-q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "# Doc B\n\nanother line\n\n" {
		t.Errorf("unexpected markdown %q", out)
	}

	if _, err := run(t, "show", "wikitext-2", "--doc", "5", "-q"); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		12:               "12 B",
		2048:             "2.0 KiB",
		4 * 1024 * 1024:  "4.0 MiB",
		190 * 1024 << 20: "190.0 GiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
