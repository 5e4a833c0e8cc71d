package standardizer

import (
	"regexp"
	"strings"
	"unicode"
)

// matchRewriter turns one rule match into its canonical replacement. trailing
// is the text immediately after the match, for rules whose exclusions depend on
// what follows the span. Returning ok=false leaves the span untouched.
type matchRewriter func(m []string, trailing string) (string, bool)

// rule pairs a compiled matcher with its canonicalizer. Rules are evaluated in
// a fixed priority order because the notations overlap: a chapter-only citation
// is a strict prefix of a chapter:verse citation and must only be tried where
// the more specific forms have already had their pass.
type rule struct {
	re      *regexp.Regexp
	rewrite matchRewriter
}

var (
	// Guards the chapter-only rule against spans the chapter:verse rules own:
	// a trailing verse separator, or a second bare number, or a chapter-span
	// dash that the span rule converts instead.
	reAfterChapterOnly = regexp.MustCompile(`^(?:\s*[:.]|\s+\d|-\d)`)
	// Guards the chapter-span rule against cross-chapter ranges.
	reAfterSpan = regexp.MustCompile(`^\s*:`)

	reCommaSpace = regexp.MustCompile(`(\d+),\s+(\d+)`)
)

// alternation builds a single grouped alternation of escaped literals. The
// inputs must already be ordered longest-first: Go's regexp prefers the
// leftmost alternative, so a short alias listed early would pre-empt a longer
// one starting with the same letters.
func alternation(keys []string) string {
	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = regexp.QuoteMeta(k)
	}
	return "(" + strings.Join(escaped, "|") + ")"
}

// buildRules derives the ordered recognizer rules from the table's alias keys.
// Rule order is load-bearing; see the comments on each family.
func buildRules(t *AliasTable) []rule {
	alt := alternation(t.Keys())

	canonical := func(m []string) (string, bool) {
		return t.Lookup(m[1])
	}

	return []rule{
		// 1. Cross-chapter range: "Book C1:V1-C2:V2". Both endpoints pass
		// through verbatim; only the book is canonicalized. Runs first so the
		// plain chapter:verse rule never splits the range in two.
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+):(\d+)-(\d+):(\d+)\b`),
			rewrite: func(m []string, _ string) (string, bool) {
				book, ok := canonical(m)
				if !ok {
					return "", false
				}
				return book + " " + m[2] + ":" + m[3] + "-" + m[4] + ":" + m[5], true
			},
		},
		// 2. Chapter-verse, colon form: "Book C:V[-V2](,V3[-V4])*". The comma
		// tail is captured whole and normalized so no listed verse is lost.
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+):(\d+)(?:-(\d+))?((?:,\s*\d+(?:-\d+)?)*)\b`),
			rewrite: func(m []string, _ string) (string, bool) {
				return rewriteChapterVerse(t, m)
			},
		},
		// 3. Chapter-verse, period form: "Book C.V" rewritten to colon form.
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+)\.(\d+)(?:-(\d+))?((?:,\s*\d+(?:-\d+)?)*)\b`),
			rewrite: func(m []string, _ string) (string, bool) {
				return rewriteChapterVerse(t, m)
			},
		},
		// 4. Chapter-verse, space form: "Book C V[-V2]".
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+)\s+(\d+)(?:-(\d+))?\b`),
			rewrite: func(m []string, _ string) (string, bool) {
				book, ok := canonical(m)
				if !ok {
					return "", false
				}
				out := book + " " + m[2] + ":" + m[3]
				if m[4] != "" {
					out += "-" + m[4]
				}
				return out, true
			},
		},
		// 5. Verbose form: "Book chapter C verse V[-V2]".
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s*chapter\s+(\d+)\s*verse\s+(\d+)(?:-(\d+))?\b`),
			rewrite: func(m []string, _ string) (string, bool) {
				book, ok := canonical(m)
				if !ok {
					return "", false
				}
				out := book + " " + m[2] + ":" + m[3]
				if m[4] != "" {
					out += "-" + m[4]
				}
				return out, true
			},
		},
		// 6. Chapter-only: "Book C" becomes "Book C:1". An unqualified chapter
		// citation is read as verse 1, not as the whole chapter. The trailing
		// guard keeps this rule off anything rules 1-5 or rule 7 own.
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+)\b`),
			rewrite: func(m []string, trailing string) (string, bool) {
				if reAfterChapterOnly.MatchString(trailing) {
					return "", false
				}
				book, ok := canonical(m)
				if !ok {
					return "", false
				}
				return book + " " + m[2] + ":1", true
			},
		},
		// 7. Post-pass, multi-chapter shorthand: "Book C1-C2" with no colon
		// anywhere becomes "Book C1:1-C2:1".
		{
			re: regexp.MustCompile(`(?i)\b` + alt + `\s+(\d+)-(\d+)\b`),
			rewrite: func(m []string, trailing string) (string, bool) {
				if reAfterSpan.MatchString(trailing) {
					return "", false
				}
				book, ok := canonical(m)
				if !ok {
					return "", false
				}
				return book + " " + m[2] + ":1-" + m[3] + ":1", true
			},
		},
	}
}

func rewriteChapterVerse(t *AliasTable, m []string) (string, bool) {
	book, ok := t.Lookup(m[1])
	if !ok {
		return "", false
	}
	out := book + " " + m[2] + ":" + m[3]
	if m[4] != "" {
		out += "-" + m[4]
	}
	if m[5] != "" {
		out += stripSpace(m[5])
	}
	return out, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// applyRule runs one global find-and-replace pass. It walks matches by index
// so the rewriter can see the text after each span, which is how exclusions
// are expressed without lookahead.
func applyRule(text string, r rule) string {
	locs := r.re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		m := make([]string, len(loc)/2)
		for i := range m {
			if loc[2*i] >= 0 {
				m[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		repl, ok := r.rewrite(m, text[loc[1]:])
		if !ok {
			repl = m[0]
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(repl)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// cleanupCommaLists removes whitespace after commas inside verse lists, so
// "16, 18" reads "16,18". Iterated to a fixed point: the matcher consumes the
// digits on both sides of the comma, so "16, 18, 20" needs a second pass.
func cleanupCommaLists(text string) string {
	for {
		next := reCommaSpace.ReplaceAllString(text, "$1,$2")
		if next == text {
			return next
		}
		text = next
	}
}
