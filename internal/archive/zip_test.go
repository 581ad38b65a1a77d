package archive

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestUnzip_ExtractsNestedEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wikitext-2-v1.zip")
	writeZip(t, src, map[string]string{
		"wikitext-2/":                  "",
		"wikitext-2/wiki.train.tokens": " = A = \n",
		"wikitext-2/wiki.valid.tokens": " = B = \n",
	})

	dest := filepath.Join(dir, "out", "data")
	if !Unzip(src, dest, testLogger()) {
		t.Fatal("expected extraction to succeed")
	}

	got, err := os.ReadFile(filepath.Join(dest, "wikitext-2", "wiki.valid.tokens"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != " = B = \n" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestUnzip_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.zip")
	if err := os.WriteFile(src, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if Unzip(src, filepath.Join(dir, "out"), testLogger()) {
		t.Fatal("expected extraction of corrupt archive to fail")
	}
}

func TestUnzip_MissingArchive(t *testing.T) {
	dir := t.TempDir()
	if Unzip(filepath.Join(dir, "absent.zip"), dir, testLogger()) {
		t.Fatal("expected extraction of missing archive to fail")
	}
}

func TestUnzip_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	writeZip(t, src, map[string]string{"../escaped.txt": "x"})

	dest := filepath.Join(dir, "out")
	if Unzip(src, dest, testLogger()) {
		t.Fatal("expected extraction to refuse path traversal")
	}
	if _, err := os.Stat(filepath.Join(dir, "escaped.txt")); !os.IsNotExist(err) {
		t.Errorf("escaping entry was written, stat err = %v", err)
	}
}
