// Package textclean repairs spacing artifacts in text extracted from PDFs:
// words fused across former line or span boundaries, punctuation glued to the
// next sentence, and references run into surrounding prose. Fixes are
// deliberately conservative; a false split is worse than a missed join.
package textclean

import (
	"regexp"
	"strings"
)

type fix struct {
	re   *regexp.Regexp
	repl string
}

// Function words that show up fused to the following word often enough to fix.
// The following word must be 3+ letters so legitimate compounds survive.
var commonWordJoins = buildPrefixFixes([]string{
	"but", "and", "or", "in", "of", "to", "for", "with", "the", "that",
	"this", "who", "when", "where",
})

// Vocabulary specific to the texts this tool is pointed at.
var religiousWordJoins = buildPrefixFixes([]string{
	"priceless", "spiritual", "Christian", "Scripture", "Biblical", "sacred",
	"blessed", "eternal", "righteous", "salvation", "redemption", "resurrection",
})

var (
	digitLetter  = fix{regexp.MustCompile(`([0-9])([a-zA-Z])`), "$1 $2"}
	letterDigit  = fix{regexp.MustCompile(`([a-z])([0-9])`), "$1 $2"}
	sentencePunc = fix{regexp.MustCompile(`([.!?])([A-Z])`), "$1 $2"}
	clausePunc   = fix{regexp.MustCompile(`([,;:])([a-zA-Z])`), "$1 $2"}
	quoteJoin    = fix{regexp.MustCompile(`([a-zA-Z])(["'])`), "$1 $2"}

	refLeftJoin  = fix{regexp.MustCompile(`([a-zA-Z])([0-9]+:[0-9]+)`), "$1 $2"}
	refRightJoin = fix{regexp.MustCompile(`([0-9]+:[0-9]+)([a-zA-Z])`), "$1 $2"}

	caseBoundary   = fix{regexp.MustCompile(`([a-z])([A-Z][a-z])`), "$1 $2"}
	periodCapital  = fix{regexp.MustCompile(`\.([A-Z])`), ". $1"}
	multiSpace     = fix{regexp.MustCompile(`\s+`), " "}
	spaceBeforeEnd = fix{regexp.MustCompile(`\s+([.!?,:;])`), "$1"}
)

func buildPrefixFixes(words []string) []fix {
	fixes := make([]fix, len(words))
	for i, w := range words {
		fixes[i] = fix{
			re:   regexp.MustCompile(`(?i)\b(` + w + `)([a-z]{3,})`),
			repl: "$1 $2",
		}
	}
	return fixes
}

// Clean fixes common spacing problems in extracted text. Empty or whitespace
// input comes back unchanged.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	text = digitLetter.apply(text)
	text = letterDigit.apply(text)

	text = sentencePunc.apply(text)
	text = clausePunc.apply(text)
	text = quoteJoin.apply(text)

	for _, f := range commonWordJoins {
		text = f.apply(text)
	}
	for _, f := range religiousWordJoins {
		text = f.apply(text)
	}

	text = refLeftJoin.apply(text)
	text = refRightJoin.apply(text)

	text = caseBoundary.apply(text)
	text = periodCapital.apply(text)

	text = multiSpace.apply(text)
	text = spaceBeforeEnd.apply(text)

	return strings.TrimSpace(text)
}

func (f fix) apply(text string) string {
	return f.re.ReplaceAllString(text, f.repl)
}
