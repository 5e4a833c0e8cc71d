package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

func TestMainCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "abbreviations.html")
	out := filepath.Join(dir, "books.csv")

	page := `<html><body><table>
		<tr><th>Book Name</th><th>Abbreviations</th></tr>
		<tr><td>Genesis</td><td>Gen, Ge, Gn</td></tr>
		<tr><td><b>Psalms</b></td><td>Ps (pl. Pss), Psalm</td></tr>
		<tr><td>Footnote</td><td></td></tr>
	</table></body></html>`
	if err := os.WriteFile(in, []byte(page), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := MainCSV(in, out); err != nil {
		t.Fatalf("MainCSV failed: %v", err)
	}

	rows, err := standardizer.LoadRows(out)
	if err != nil {
		t.Fatalf("extracted CSV does not load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0].Name != "Genesis" || rows[1].Name != "Psalms" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	table := standardizer.BuildAliasTable(rows)
	if got, ok := table.Lookup("pss"); !ok || got != "Psalms" {
		t.Fatalf("Lookup(pss) = %q, %v; want Psalms", got, ok)
	}
	t.Logf("✓ Extracted %d rows from HTML table", len(rows))
}

func TestMainJSON(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "books.json")

	if err := MainJSON("", out); err != nil {
		t.Fatalf("MainJSON failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var output Output
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if output.Schema != 1 || len(output.Books) != 66 {
		t.Fatalf("schema=%d books=%d, want schema=1 books=66", output.Schema, len(output.Books))
	}
	first := output.Books[0]
	if first.Name != "Genesis" || first.OSIS != "Gen" || first.Order != 1 {
		t.Fatalf("unexpected first book: %+v", first)
	}
	for _, b := range output.Books {
		if len(b.Aliases) == 0 {
			t.Fatalf("book %s has no aliases", b.Name)
		}
	}
}
