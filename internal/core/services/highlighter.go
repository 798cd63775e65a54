package services

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Markers wrapped around matched terms in snippets. The presentation
// layer renders these directly.
const (
	markStart = "<mark>"
	markEnd   = "</mark>"
)

// Highlighter produces marked-up snippets around matched terms.
//
// Every case-insensitive occurrence of a matched term is wrapped in
// mark tags; text outside the marked spans is byte-identical to the
// source field. Long fields are cut down to a bounded excerpt centred
// on the first match. Overlapping matches are wrapped once.
type Highlighter struct {
	snippetLength int
}

// NewHighlighter creates a highlighter with the given maximum excerpt
// length in bytes. Non-positive falls back to the default.
func NewHighlighter(snippetLength int) *Highlighter {
	if snippetLength <= 0 {
		snippetLength = DefaultConfig().SnippetLength
	}
	return &Highlighter{snippetLength: snippetLength}
}

// span is a half-open byte range within the source text.
type span struct {
	start, end int
}

// Highlight wraps each occurrence of the matched terms in text.
// Returns false when no term occurs, in which case no snippet should
// be attached for the field.
func (h *Highlighter) Highlight(text string, terms []string) (string, bool) {
	spans := findSpans(text, terms)
	if len(spans) == 0 {
		return "", false
	}

	start, end := 0, len(text)
	if len(text) > h.snippetLength {
		start, end = h.window(text, spans[0].start)
		spans = clip(spans, start, end)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	cur := start
	for _, sp := range spans {
		b.WriteString(text[cur:sp.start])
		b.WriteString(markStart)
		b.WriteString(text[sp.start:sp.end])
		b.WriteString(markEnd)
		cur = sp.end
	}
	b.WriteString(text[cur:end])
	if end < len(text) {
		b.WriteString("...")
	}
	return b.String(), true
}

// findSpans locates every case-insensitive occurrence of every term
// and merges them into non-overlapping spans in text order.
//
// Matching folds rune by rune over the original string, so spans are
// always valid byte ranges of text even where case conversion changes
// a rune's encoded length.
func findSpans(text string, terms []string) []span {
	var spans []span
	for _, term := range terms {
		if term == "" {
			continue
		}
		for i := 0; i < len(text); {
			if length, ok := matchAt(text, term, i); ok {
				spans = append(spans, span{start: i, end: i + length})
				i += length
				continue
			}
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	merged := spans[:1]
	for _, sp := range spans[1:] {
		if sp.start < merged[len(merged)-1].end {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// matchAt reports whether term occurs at byte offset i of text under
// rune-wise case folding, and how many bytes of text it covers there.
func matchAt(text, term string, i int) (int, bool) {
	n := i
	for j := 0; j < len(term); {
		if n >= len(text) {
			return 0, false
		}
		tr, tsize := utf8.DecodeRuneInString(text[n:])
		qr, qsize := utf8.DecodeRuneInString(term[j:])
		if !foldEqual(tr, qr) {
			return 0, false
		}
		n += tsize
		j += qsize
	}
	return n - i, true
}

// foldEqual reports whether two runes are equal under simple Unicode
// case folding.
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// window picks an excerpt range of at most snippetLength bytes centred
// near the first match, aligned to rune boundaries.
func (h *Highlighter) window(text string, firstMatch int) (int, int) {
	start := firstMatch - h.snippetLength/4
	if start < 0 {
		start = 0
	}
	end := start + h.snippetLength
	if end > len(text) {
		end = len(text)
		start = end - h.snippetLength
		if start < 0 {
			start = 0
		}
	}
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > start && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}
	return start, end
}

// clip drops spans that do not fit entirely inside the excerpt window.
func clip(spans []span, start, end int) []span {
	var kept []span
	for _, sp := range spans {
		if sp.start >= start && sp.end <= end {
			kept = append(kept, sp)
		}
	}
	return kept
}
