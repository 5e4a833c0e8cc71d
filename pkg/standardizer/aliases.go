package standardizer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// AliasRow is one row of the tabular alias source: a canonical book name and a
// comma-separated list of its accepted spellings. The alias field may carry one
// parenthetical annotation of the form "base (pl. plural)".
type AliasRow struct {
	Name    string
	Aliases string
}

// AliasTable maps case-folded book spellings to canonical book names. It is
// built once and never mutated afterwards, so lookups are safe from any
// goroutine.
type AliasTable struct {
	byAlias   map[string]string
	canonical map[string]struct{}
}

// BuildAliasTable constructs the table from an ordered row sequence.
// Ingestion is fault tolerant: rows with an empty name are skipped, duplicate
// alias keys resolve last-write-wins, and a malformed annotation degrades to
// whatever could be extracted from it.
func BuildAliasTable(rows []AliasRow) *AliasTable {
	t := &AliasTable{
		byAlias:   make(map[string]string),
		canonical: make(map[string]struct{}),
	}

	for _, row := range rows {
		name, spellings, ok := ExpandRow(row)
		if !ok {
			continue
		}
		t.canonical[name] = struct{}{}
		for _, s := range spellings {
			t.register(s, name)
		}
	}

	return t
}

// ExpandRow resolves one source row to its canonical name and every spelling
// the row contributes, parenthetical annotations unfolded. ok is false for
// rows without a usable name.
func ExpandRow(row AliasRow) (name string, spellings []string, ok bool) {
	fullName := strings.TrimSpace(row.Name)
	if fullName == "" {
		return "", nil, false
	}

	// The name field may carry a parenthetical annotation; the canonical name
	// is everything before it.
	name = fullName
	if i := strings.Index(name, "("); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return "", nil, false
	}

	// The clean name counts as a spelling, so lookups on the canonical
	// spelling itself always succeed. An annotated full name resolves too.
	spellings = append(spellings, name)
	if fullName != name {
		spellings = append(spellings, fullName)
	}

	for _, token := range strings.Split(row.Aliases, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if open := strings.Index(token, "("); open >= 0 {
			// "Ps (pl. Pss)" contributes both the base form and the plural
			// named inside the annotation.
			if base := strings.TrimSpace(token[:open]); base != "" {
				spellings = append(spellings, base)
			}
			if closing := strings.Index(token, ")"); closing > open {
				inner := token[open+1 : closing]
				if strings.Contains(inner, "pl.") {
					plural := strings.TrimSpace(strings.ReplaceAll(inner, "pl.", ""))
					if plural != "" {
						spellings = append(spellings, plural)
					}
				}
			}
			continue
		}
		spellings = append(spellings, token)
	}

	// The source data only carries the plural book title; the singular is
	// common enough in prose to warrant its own alias.
	if name == "Psalms" {
		spellings = append(spellings, "psalm")
	}

	return name, spellings, true
}

func (t *AliasTable) register(alias, canonical string) {
	t.byAlias[strings.ToLower(alias)] = canonical
}

// Lookup resolves a spelling to its canonical book name. Matching is
// case-insensitive and exact; absence is not an error.
func (t *AliasTable) Lookup(text string) (string, bool) {
	name, ok := t.byAlias[strings.ToLower(strings.TrimSpace(text))]
	return name, ok
}

// Keys returns every registered alias key, longest first. The ordering is the
// tie-break that keeps a short alias from pre-empting a longer one inside a
// pattern alternation.
func (t *AliasTable) Keys() []string {
	keys := make([]string, 0, len(t.byAlias))
	for k := range t.byAlias {
		keys = append(keys, k)
	}
	sortLongestFirst(keys)
	return keys
}

// CanonicalNames returns the distinct canonical book names, longest first.
func (t *AliasTable) CanonicalNames() []string {
	names := make([]string, 0, len(t.canonical))
	for n := range t.canonical {
		names = append(names, n)
	}
	sortLongestFirst(names)
	return names
}

// Len reports the number of registered alias keys.
func (t *AliasTable) Len() int {
	return len(t.byAlias)
}

// BookCount reports the number of distinct canonical names.
func (t *AliasTable) BookCount() int {
	return len(t.canonical)
}

func sortLongestFirst(ss []string) {
	sort.Slice(ss, func(i, j int) bool {
		if len(ss[i]) != len(ss[j]) {
			return len(ss[i]) > len(ss[j])
		}
		return ss[i] < ss[j]
	})
}

// ReadRows reads alias rows from a CSV stream. Rows with fewer than two fields
// are dropped, and a leading header row is recognized by its "Name" cell and
// skipped, so both bare and headed exports load the same.
func ReadRows(r io.Reader) ([]AliasRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []AliasRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &StandardizerError{
				Kind: ParseError,
				Err:  fmt.Errorf("failed to parse alias CSV: %w", err),
			}
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "name") {
				continue
			}
		}
		if len(record) < 2 {
			continue
		}
		rows = append(rows, AliasRow{Name: record[0], Aliases: record[1]})
	}
	return rows, nil
}

// LoadRows reads alias rows from a CSV file. A missing or unreadable file is a
// load error; there is no fallback to an empty table.
func LoadRows(path string) ([]AliasRow, error) {
	f, err := os.Open(path) // nolint: gosec
	if err != nil {
		msg := fmt.Sprintf("cannot open alias source: %s", path)
		return nil, &StandardizerError{
			Kind:    FileError,
			Message: &msg,
			Err:     ErrNoSource,
			Cause:   err,
		}
	}
	defer f.Close()

	return ReadRows(f)
}
