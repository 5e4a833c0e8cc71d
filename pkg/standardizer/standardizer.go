// Package standardizer rewrites Bible references embedded in free-form text
// into the canonical "Book Chapter:Verse" form. Book spellings come from a
// tabular alias source; citation notations are recognized by an ordered set of
// pattern rules so overlapping forms resolve deterministically.
package standardizer

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Standardizer is the reference recognition and canonicalization engine. The
// alias table and pattern set are built once at construction and never mutated,
// so a single instance may serve concurrent Process calls; the only shared
// mutable state is the unmatched-candidate set, which is mutex-guarded.
type Standardizer struct {
	table  *AliasTable
	rules  []rule
	parser *refParser

	trackUnmatched bool
	mu             sync.Mutex
	unmatched      map[string]struct{}
}

// Stats aggregates a batch of fragment results.
type Stats struct {
	Processed int
	Changed   int
}

type config struct {
	rows           []AliasRow
	csvPath        string
	trackUnmatched bool
}

// Option configures engine construction.
type Option func(*config)

// WithRows builds the alias table from the given rows instead of the embedded
// source. Hard-coded maps and test fixtures are just another row sequence.
func WithRows(rows []AliasRow) Option {
	return func(c *config) { c.rows = rows }
}

// WithCSV loads the alias table from a CSV file at the given path.
func WithCSV(path string) Option {
	return func(c *config) { c.csvPath = path }
}

// WithUnmatchedTracking records reference-shaped spans whose book token is not
// in the alias table. The set accumulates across Process calls for the life of
// the engine.
func WithUnmatchedTracking() Option {
	return func(c *config) { c.trackUnmatched = true }
}

// New constructs an engine. Construction is the only operation that can fail:
// an inaccessible alias source or one that yields no usable rows is a load
// error, with no silent fallback to an empty table.
func New(opts ...Option) (*Standardizer, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	rows := cfg.rows
	var err error
	switch {
	case rows != nil:
	case cfg.csvPath != "":
		rows, err = LoadRows(cfg.csvPath)
	default:
		rows, err = DefaultRows()
	}
	if err != nil {
		return nil, err
	}

	table := BuildAliasTable(rows)
	if table.Len() == 0 {
		return nil, &StandardizerError{Kind: ParseError, Err: ErrEmptyTable}
	}

	return &Standardizer{
		table:          table,
		rules:          buildRules(table),
		parser:         buildParser(table),
		trackUnmatched: cfg.trackUnmatched,
		unmatched:      make(map[string]struct{}),
	}, nil
}

// Process rewrites every recognized reference in text to canonical form and
// reports whether the result differs from the input. Each rule family runs as
// a global pass over the current text, so later rules see the output of
// earlier ones; text outside matched spans is untouched. Process never fails:
// text with no recognizable reference comes back unchanged.
func (s *Standardizer) Process(text string) (string, bool) {
	original := text
	for _, r := range s.rules {
		text = applyRule(text, r)
	}
	text = cleanupCommaLists(text)

	if s.trackUnmatched {
		s.recordUnmatched(text)
	}

	return text, text != original
}

// ProcessAll runs Process over independent fragments and aggregates counts.
func (s *Standardizer) ProcessAll(fragments []string) ([]string, Stats) {
	out := make([]string, len(fragments))
	var stats Stats
	for i, frag := range fragments {
		newText, changed := s.Process(frag)
		out[i] = newText
		stats.Processed++
		if changed {
			stats.Changed++
		}
	}
	return out, stats
}

// Table exposes the engine's alias table for lookups and introspection.
func (s *Standardizer) Table() *AliasTable {
	return s.table
}

// Unmatched returns the distinct unmatched candidates seen so far, sorted.
// Empty unless the engine was built with WithUnmatchedTracking.
func (s *Standardizer) Unmatched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.unmatched))
	for ref := range s.unmatched {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// reCandidate finds reference-shaped spans: an optional ordinal prefix, a
// capitalized word (with optional abbreviation dot), then chapter and verse
// separated by ':' or '.'. Known books have been canonicalized by the time the
// scan runs, so anything whose token misses the table is a candidate.
var reCandidate = regexp.MustCompile(`\b((?:[1-3] ?)?[A-Z][A-Za-z]*\.?)\s+\d+[:.]\d+(?:-\d+(?::\d+)?)?`)

func (s *Standardizer) recordUnmatched(text string) {
	for _, m := range reCandidate.FindAllStringSubmatch(text, -1) {
		token := strings.TrimSuffix(m[1], ".")
		if _, ok := s.table.Lookup(token); ok {
			continue
		}
		if _, ok := s.table.Lookup(m[1]); ok {
			continue
		}
		s.mu.Lock()
		s.unmatched[m[0]] = struct{}{}
		s.mu.Unlock()
	}
}
