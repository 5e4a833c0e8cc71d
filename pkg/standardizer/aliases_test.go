package standardizer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRows(t *testing.T) {
	rows, err := DefaultRows()
	if err != nil {
		t.Fatalf("failed to load embedded rows: %v", err)
	}
	if len(rows) != 66 {
		t.Fatalf("expected 66 book rows, got %d", len(rows))
	}
	t.Logf("✓ Loaded %d book rows from embedded source", len(rows))
}

func TestBuildAliasTable(t *testing.T) {
	rows, err := DefaultRows()
	if err != nil {
		t.Fatalf("failed to load embedded rows: %v", err)
	}
	table := BuildAliasTable(rows)

	tests := []struct {
		alias string
		want  string
	}{
		{"gen", "Genesis"},
		{"ge", "Genesis"},
		{"gn", "Genesis"},
		{"Genesis", "Genesis"},
		{"ps", "Psalms"},
		{"pss", "Psalms"},
		{"psalm", "Psalms"},
		{"PSALMS", "Psalms"},
		{"1 cor", "1 Corinthians"},
		{"1 Corinthians", "1 Corinthians"},
		{"rom", "Romans"},
		{"rom.", "Romans"},
		{"jn", "John"},
		{"rev", "Revelation"},
	}
	for _, tc := range tests {
		t.Run(tc.alias, func(t *testing.T) {
			got, ok := table.Lookup(tc.alias)
			if !ok {
				t.Fatalf("alias %q not found", tc.alias)
			}
			if got != tc.want {
				t.Fatalf("Lookup(%q) = %q, want %q", tc.alias, got, tc.want)
			}
			t.Logf("✓ %s -> %s", tc.alias, got)
		})
	}
}

func TestBuildAliasTablePluralParenthetical(t *testing.T) {
	table := BuildAliasTable([]AliasRow{
		{Name: "Psalms", Aliases: "Ps (pl. Pss), Psalm"},
	})

	for _, alias := range []string{"ps", "pss", "psalm", "psalms"} {
		if got, ok := table.Lookup(alias); !ok || got != "Psalms" {
			t.Fatalf("Lookup(%q) = %q, %v; want Psalms, true", alias, got, ok)
		}
	}
	t.Logf("✓ Parenthetical plural expanded to both singular and plural aliases")
}

func TestExpandRow(t *testing.T) {
	name, spellings, ok := ExpandRow(AliasRow{Name: "Psalms", Aliases: "Ps (pl. Pss), Psa"})
	if !ok || name != "Psalms" {
		t.Fatalf("ExpandRow name = %q, %v", name, ok)
	}
	want := map[string]bool{"Psalms": true, "Ps": true, "Pss": true, "Psa": true, "psalm": true}
	if len(spellings) != len(want) {
		t.Fatalf("spellings = %v, want keys of %v", spellings, want)
	}
	for _, s := range spellings {
		if !want[s] {
			t.Fatalf("unexpected spelling %q in %v", s, spellings)
		}
	}

	if _, _, ok := ExpandRow(AliasRow{Name: " ", Aliases: "x"}); ok {
		t.Fatal("blank name should not expand")
	}
}

func TestBuildAliasTableSkipsMalformedRows(t *testing.T) {
	table := BuildAliasTable([]AliasRow{
		{Name: "", Aliases: "gen, ge"},
		{Name: "   ", Aliases: "ex"},
		{Name: "Jude", Aliases: ""},
	})

	if _, ok := table.Lookup("gen"); ok {
		t.Fatal("alias from a nameless row should not resolve")
	}
	if got, ok := table.Lookup("jude"); !ok || got != "Jude" {
		t.Fatalf("Lookup(jude) = %q, %v; want Jude, true", got, ok)
	}
}

func TestKeysOrderedLongestFirst(t *testing.T) {
	table := BuildAliasTable([]AliasRow{
		{Name: "John", Aliases: "Jn, Joh"},
		{Name: "Jonah", Aliases: "Jon"},
	})

	keys := table.Keys()
	for i := 1; i < len(keys); i++ {
		if len(keys[i]) > len(keys[i-1]) {
			t.Fatalf("keys not ordered longest-first: %q before %q", keys[i-1], keys[i])
		}
	}
	t.Logf("✓ %d keys ordered longest-first", len(keys))
}

func TestLoadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.csv")
	csv := "Name,Aliases\nGenesis,\"Gen, Ge, Gn\"\nshort-row\nExodus,\"Ex, Exo\"\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("failed to load rows: %v", err)
	}
	// Header row and short row are both dropped.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Genesis" || !strings.Contains(rows[0].Aliases, "Gn") {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestLoadRowsMissingFile(t *testing.T) {
	_, err := LoadRows(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var serr *StandardizerError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StandardizerError, got %T", err)
	}
	if serr.Kind != FileError {
		t.Fatalf("expected FileError kind, got %v", serr.Kind)
	}
	t.Logf("✓ Missing file reported as: %v", err)
}
