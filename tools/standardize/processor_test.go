package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

func testEngine(t *testing.T) *standardizer.Standardizer {
	t.Helper()
	eng, err := standardizer.New()
	if err != nil {
		t.Fatalf("failed to construct engine: %v", err)
	}
	return eng
}

func TestProcessTextFile(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.txt")

	input := "Opening prayer.\nToday we read jn 3:16 together.\nSee also Rom 8.28, 31\n"
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	res, err := processTextFile(eng, path, processOptions{})
	if err != nil {
		t.Fatalf("processTextFile failed: %v", err)
	}
	if res.Stats.Changed != 2 {
		t.Fatalf("expected 2 changed lines, got %d", res.Stats.Changed)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "Opening prayer.\nToday we read John 3:16 together.\nSee also Romans 8:28,31\n"
	if string(got) != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	t.Logf("✓ Text file standardized in place")
}

func TestProcessTextFileNoChanges(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	if err := os.WriteFile(path, []byte("No references here.\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	before, _ := os.Stat(path)

	res, err := processTextFile(eng, path, processOptions{})
	if err != nil {
		t.Fatalf("processTextFile failed: %v", err)
	}
	if res.Stats.Changed != 0 {
		t.Fatalf("expected no changed lines, got %d", res.Stats.Changed)
	}

	after, _ := os.Stat(path)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("unchanged file should not be rewritten")
	}
}

func TestProcessTextFileDryRun(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.txt")

	input := "read jn 3:16\n"
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	res, err := processTextFile(eng, path, processOptions{DryRun: true})
	if err != nil {
		t.Fatalf("processTextFile failed: %v", err)
	}
	if res.Stats.Changed != 1 {
		t.Fatalf("dry run should still count changes, got %d", res.Stats.Changed)
	}

	got, _ := os.ReadFile(path)
	if string(got) != input {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

func TestProcessTextFileSeparateOutput(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(in, []byte("jn 3:16\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	res, err := processTextFile(eng, in, processOptions{Output: out})
	if err != nil {
		t.Fatalf("processTextFile failed: %v", err)
	}
	if res.Output != out {
		t.Fatalf("result output = %q, want %q", res.Output, out)
	}

	original, _ := os.ReadFile(in)
	if string(original) != "jn 3:16\n" {
		t.Fatal("input file should be untouched when output is set")
	}
	written, _ := os.ReadFile(out)
	if string(written) != "John 3:16\n" {
		t.Fatalf("output = %q, want John 3:16", written)
	}
}

func TestProcessHTMLFile(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")

	input := `<html><head><style>p { color: red }</style></head>` +
		`<body><p>Read jn 3:16 today.</p><script>var x = "ps 23";</script></body></html>`
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	res, err := processHTMLFile(eng, path, processOptions{})
	if err != nil {
		t.Fatalf("processHTMLFile failed: %v", err)
	}
	if res.Stats.Changed != 1 {
		t.Fatalf("expected 1 changed fragment, got %d", res.Stats.Changed)
	}

	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), "Read John 3:16 today.") {
		t.Fatalf("body text not standardized: %s", got)
	}
	if !strings.Contains(string(got), `var x = "ps 23";`) {
		t.Fatalf("script content should be untouched: %s", got)
	}
	if !strings.Contains(string(got), "p { color: red }") {
		t.Fatalf("style content should be untouched: %s", got)
	}
	t.Logf("✓ HTML text nodes standardized, script and style preserved")
}

// writeTestDocx assembles a minimal but structurally honest Word package.
func writeTestDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	var runs strings.Builder
	for _, p := range paragraphs {
		runs.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + runs.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/document.xml": document,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write docx: %v", err)
	}
}

func readDocxParagraphs(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open docx: %v", err)
	}
	defer zr.Close()

	content, err := readZipEntry(&zr.Reader, wordDocumentEntry)
	if err != nil {
		t.Fatalf("failed to read document.xml: %v", err)
	}

	var paragraphs []string
	rest := string(content)
	for {
		start := strings.Index(rest, "<w:t>")
		if start < 0 {
			break
		}
		rest = rest[start+len("<w:t>"):]
		end := strings.Index(rest, "</w:t>")
		if end < 0 {
			break
		}
		paragraphs = append(paragraphs, rest[:end])
		rest = rest[end:]
	}
	return paragraphs
}

func TestProcessDocxFile(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.docx")

	writeTestDocx(t, path, []string{
		"Welcome to the service.",
		"Our text is jn 3:16 this morning.",
		"Turn also to ps 23",
	})

	res, err := processDocxFile(eng, path, processOptions{})
	if err != nil {
		t.Fatalf("processDocxFile failed: %v", err)
	}
	if res.Stats.Processed != 3 || res.Stats.Changed != 2 {
		t.Fatalf("stats = %+v, want Processed=3 Changed=2", res.Stats)
	}

	got := readDocxParagraphs(t, path)
	want := []string{
		"Welcome to the service.",
		"Our text is John 3:16 this morning.",
		"Turn also to Psalms 23:1",
	}
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
	t.Logf("✓ Word document runs standardized")
}

func TestProcessDocxFilePreservesOtherEntries(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.docx")

	writeTestDocx(t, path, []string{"jn 3:16"})

	if _, err := processDocxFile(eng, path, processOptions{}); err != nil {
		t.Fatalf("processDocxFile failed: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to reopen docx: %v", err)
	}
	defer zr.Close()

	content, err := readZipEntry(&zr.Reader, "[Content_Types].xml")
	if err != nil {
		t.Fatalf("content types entry missing after rewrite: %v", err)
	}
	if !strings.Contains(string(content), "content-types") {
		t.Fatalf("content types entry corrupted: %s", content)
	}
}

func TestProcessDocxFileNotAZip(t *testing.T) {
	eng := testEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.docx")

	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := processDocxFile(eng, path, processOptions{}); err == nil {
		t.Fatal("expected error for a non-zip docx")
	}
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.txt")
	if err := os.WriteFile(path, []byte("jn 3:16"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	backup, err := createBackup(path)
	if err != nil {
		t.Fatalf("createBackup failed: %v", err)
	}

	base := filepath.Base(backup)
	if !strings.HasPrefix(base, "sermon_backup_") || !strings.HasSuffix(base, ".txt") {
		t.Fatalf("unexpected backup name: %s", base)
	}
	content, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(content) != "jn 3:16" {
		t.Fatalf("backup content = %q", content)
	}
	t.Logf("✓ Backup created at %s", base)
}

func TestCollectSupported(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.docx", "c.html", "d.pdf", "e.png", "f.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatalf("failed to make dir: %v", err)
	}

	files, skipped, err := collectSupported(dir)
	if err != nil {
		t.Fatalf("collectSupported failed: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 supported files, got %d: %v", len(files), files)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped files, got %v", skipped)
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if _, ok := adapters[ext]; !ok {
			t.Fatalf("unsupported file collected: %s", f)
		}
	}
}
