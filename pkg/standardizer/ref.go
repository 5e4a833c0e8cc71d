package standardizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/canonref/bibleref"
	"github.com/julianstephens/canonref/util"
)

// VerseSpan is one verse or contiguous verse range. End is zero for a single
// verse.
type VerseSpan struct {
	Start int
	End   int
}

// ChapterVerse names the far endpoint of a cross-chapter range.
type ChapterVerse struct {
	Chapter int
	Verse   int
}

// Reference is the structured form of one canonicalized citation. It is built
// transiently from engine output and never stored between calls.
type Reference struct {
	Book            string
	Chapter         int
	Verses          []VerseSpan
	CrossChapterEnd *ChapterVerse
}

// String renders the reference in canonical form.
func (r *Reference) String() string {
	var b strings.Builder
	b.WriteString(r.Book)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Chapter))
	b.WriteByte(':')
	for i, v := range r.Verses {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v.Start))
		if v.End != 0 {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(v.End))
		}
	}
	if r.CrossChapterEnd != nil {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(r.CrossChapterEnd.Chapter))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(r.CrossChapterEnd.Verse))
	}
	return b.String()
}

// BibleRef converts the reference for canonref-based tooling. Only the first
// verse span carries over; cross-chapter far endpoints have no equivalent
// there and are dropped.
func (r *Reference) BibleRef() *bibleref.BibleRef {
	ref := &bibleref.BibleRef{Chapter: r.Chapter}
	if osis, ok := osisByName[r.Book]; ok {
		ref.OSIS = osis
	}
	if len(r.Verses) > 0 {
		vr := &util.VerseRange{StartVerse: r.Verses[0].Start}
		if r.Verses[0].End != 0 {
			end := r.Verses[0].End
			vr.EndVerse = &end
		}
		ref.Verse = vr
	}
	return ref
}

// refParser matches canonical-form references in already-standardized text.
// Patterns are anchored on the exact canonical book spellings, so they only
// fire on engine output.
type refParser struct {
	cross *regexp.Regexp
	colon *regexp.Regexp
}

func buildParser(t *AliasTable) *refParser {
	names := alternation(t.CanonicalNames())
	return &refParser{
		cross: regexp.MustCompile(`\b` + names + ` (\d+):(\d+)-(\d+):(\d+)\b`),
		colon: regexp.MustCompile(`\b` + names + ` (\d+):(\d+)(?:-(\d+))?((?:,\d+(?:-\d+)?)*)\b`),
	}
}

// ParseReference canonicalizes text and returns the first reference found in
// it, structured. The second result is false when the text holds no
// recognizable reference.
func (s *Standardizer) ParseReference(text string) (*Reference, bool) {
	text, _ = s.Process(text)

	crossLoc := s.parser.cross.FindStringSubmatchIndex(text)
	colonLoc := s.parser.colon.FindStringSubmatchIndex(text)

	// Both patterns can match; take the earliest, preferring the more
	// specific cross-chapter form on a tie.
	if crossLoc != nil && (colonLoc == nil || crossLoc[0] <= colonLoc[0]) {
		m := submatches(text, crossLoc)
		return &Reference{
			Book:    m[1],
			Chapter: mustAtoi(m[2]),
			Verses:  []VerseSpan{{Start: mustAtoi(m[3])}},
			CrossChapterEnd: &ChapterVerse{
				Chapter: mustAtoi(m[4]),
				Verse:   mustAtoi(m[5]),
			},
		}, true
	}
	if colonLoc == nil {
		return nil, false
	}

	m := submatches(text, colonLoc)
	ref := &Reference{Book: m[1], Chapter: mustAtoi(m[2])}
	span := VerseSpan{Start: mustAtoi(m[3])}
	if m[4] != "" {
		span.End = mustAtoi(m[4])
	}
	ref.Verses = append(ref.Verses, span)

	if m[5] != "" {
		for _, part := range strings.Split(strings.TrimPrefix(m[5], ","), ",") {
			extra := VerseSpan{}
			if start, end, found := strings.Cut(part, "-"); found {
				extra.Start = mustAtoi(start)
				extra.End = mustAtoi(end)
			} else {
				extra.Start = mustAtoi(part)
			}
			ref.Verses = append(ref.Verses, extra)
		}
	}
	return ref, true
}

func submatches(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}

// mustAtoi is safe on pattern captures, which are all \d+.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
