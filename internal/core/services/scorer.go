package services

import (
	"math"
	"strings"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

// FieldWeights maps each searchable field to its scoring weight.
type FieldWeights map[domain.SearchField]float64

// DefaultFieldWeights reflects that titles are curated for
// subject-matching: title > tags > category > content.
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{
		domain.FieldTitle:    3.0,
		domain.FieldTags:     2.0,
		domain.FieldCategory: 1.5,
		domain.FieldContent:  1.0,
	}
}

// prefixDiscount is the weight applied to partial (prefix) token
// matches relative to exact term matches.
const prefixDiscount = 0.4

// phraseBoost multiplies the score when the whole query occurs
// verbatim in a searched field.
const phraseBoost = 1.5

// Scorer computes TF-IDF style relevance for one candidate document.
//
// Per matched term and field the contribution is
//
//	weight(field) * (1 + ln(tf)) * ln(1 + N/df)
//
// where tf is the term frequency within the field, N the corpus size
// and df the number of documents containing the term anywhere. Rare
// terms therefore contribute more than common ones regardless of raw
// frequency, and a title match outweighs the same match in content.
type Scorer struct {
	index   *Index
	weights FieldWeights
	tok     Tokenizer
}

// NewScorer creates a scorer over the given index.
func NewScorer(index *Index, weights FieldWeights) *Scorer {
	if len(weights) == 0 {
		weights = DefaultFieldWeights()
	}
	return &Scorer{index: index, weights: weights}
}

// match is the scoring outcome for one candidate.
type match struct {
	score   float64
	factors domain.RelevanceFactors

	// fieldTerms records which query terms matched in which field,
	// for the highlighter.
	fieldTerms map[domain.SearchField][]string
}

// Score evaluates doc against the tokenized query terms over the
// requested fields. A zero score means no field matched at all and the
// document must be excluded from the results.
//
// In exact mode only whole-term matches count; otherwise terms that
// prefix an indexed term still contribute at a discount, so "java"
// finds "javascript" but ranks below a literal "java" hit.
func (s *Scorer) Score(doc domain.Document, terms []string, fields []domain.SearchField, exact bool) match {
	m := match{fieldTerms: make(map[domain.SearchField][]string)}

	total := s.index.Size()
	if total == 0 || len(terms) == 0 {
		return m
	}

	minDF := 0
	for _, f := range fields {
		w := s.weights[f]
		if w == 0 {
			w = 1
		}
		for _, t := range terms {
			contribution, df := s.termScore(f, t, doc.ID, w)
			if contribution == 0 && !exact {
				contribution, df = s.prefixScore(f, t, doc.ID, w)
			}
			if contribution == 0 {
				continue
			}
			m.score += contribution
			m.fieldTerms[f] = append(m.fieldTerms[f], t)
			s.countMatch(&m.factors, f)
			if minDF == 0 || df < minDF {
				minDF = df
			}
		}
	}

	if m.score == 0 {
		return m
	}

	// Uniqueness reflects the rarest matched term across the corpus.
	m.factors.Uniqueness = 1 - float64(minDF)/float64(total)

	if s.phraseMatch(doc, terms, fields) {
		m.factors.ExactPhrase = true
		if exact {
			m.score *= phraseBoost
		}
	}

	return m
}

// termScore returns the TF-IDF contribution of an exact term match,
// plus the term's corpus document frequency. Zero when unmatched.
func (s *Scorer) termScore(f domain.SearchField, term, docID string, weight float64) (float64, int) {
	freq := s.index.Frequency(f, term, docID)
	if freq == 0 {
		return 0, 0
	}
	df := s.index.DocFreq(term)
	tf := 1 + math.Log(float64(freq))
	idf := math.Log(1 + float64(s.index.Size())/float64(df))
	return weight * tf * idf, df
}

// prefixScore returns the best discounted contribution among indexed
// terms that the query term prefixes.
func (s *Scorer) prefixScore(f domain.SearchField, term, docID string, weight float64) (float64, int) {
	var best float64
	var bestDF int
	for _, it := range s.index.TermsWithPrefix(f, term) {
		score, df := s.termScore(f, it, docID, weight)
		if score > best {
			best, bestDF = score, df
		}
	}
	return best * prefixDiscount, bestDF
}

// countMatch increments the per-field match counter.
func (s *Scorer) countMatch(factors *domain.RelevanceFactors, f domain.SearchField) {
	switch f {
	case domain.FieldTitle:
		factors.TitleMatches++
	case domain.FieldContent:
		factors.ContentMatches++
	case domain.FieldTags:
		factors.TagMatches++
	case domain.FieldCategory:
		factors.CategoryMatches++
	}
}

// phraseMatch reports whether the whole normalised query occurs
// verbatim in any searched field.
func (s *Scorer) phraseMatch(doc domain.Document, terms []string, fields []domain.SearchField) bool {
	if len(terms) == 0 {
		return false
	}
	phrase := strings.Join(terms, " ")
	for _, f := range fields {
		if strings.Contains(s.tok.NormalizePhrase(doc.Field(f)), phrase) {
			return true
		}
	}
	return false
}
