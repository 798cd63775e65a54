package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

// posting maps document ID to term frequency within one field.
type posting map[string]int

// Index is the in-memory inverted index over the document corpus.
//
// For each searchable field it maps normalised terms to postings, which
// makes candidate retrieval O(query terms) instead of a scan over all
// documents. The raw documents are held alongside, keyed by ID.
//
// All mutation happens under a single write lock, so a rebuild is
// atomic from the reader's perspective: no caller ever observes a
// partially indexed document.
type Index struct {
	mu sync.RWMutex

	// fields holds field -> term -> posting.
	fields map[domain.SearchField]map[string]posting

	// docs holds the raw documents by ID.
	docs map[string]domain.Document

	// order records insertion order per ID. Used as the deterministic
	// tie-break when two results score identically.
	order map[string]int
	next  int

	// termDocs holds term -> set of document IDs containing the term in
	// any field. This is the corpus-level document frequency behind the
	// uniqueness measure.
	termDocs map[string]map[string]struct{}

	// docTerms remembers which terms each document contributed per
	// field, so an upsert can unindex the prior version.
	docTerms map[string]map[domain.SearchField][]string

	tok Tokenizer
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	ix := &Index{
		fields:   make(map[domain.SearchField]map[string]posting),
		docs:     make(map[string]domain.Document),
		order:    make(map[string]int),
		termDocs: make(map[string]map[string]struct{}),
		docTerms: make(map[string]map[domain.SearchField][]string),
	}
	for _, f := range domain.AllFields() {
		ix.fields[f] = make(map[string]posting)
	}
	return ix
}

// Upsert indexes the given documents. Re-indexing an existing ID
// replaces its prior postings, never duplicates them. The whole batch
// is applied under one write lock.
//
// Documents with an empty ID cannot be addressed or replaced later and
// are skipped. Missing fields on a document are simply indexed as
// empty; a malformed document never aborts the batch.
func (ix *Index) Upsert(docs []domain.Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, doc := range docs {
		if doc.ID == "" {
			continue
		}
		if _, exists := ix.docs[doc.ID]; exists {
			ix.unindex(doc.ID)
		} else {
			ix.order[doc.ID] = ix.next
			ix.next++
		}
		ix.index(doc)
	}
}

// ReplaceAll rebuilds the index from exactly the given documents.
// IDs absent from the batch are dropped, unlike Upsert. Insertion
// order restarts from the batch order, and the swap happens under one
// write lock so readers never observe a half-built corpus.
func (ix *Index) ReplaceAll(docs []domain.Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.fields = make(map[domain.SearchField]map[string]posting)
	for _, f := range domain.AllFields() {
		ix.fields[f] = make(map[string]posting)
	}
	ix.docs = make(map[string]domain.Document)
	ix.order = make(map[string]int)
	ix.next = 0
	ix.termDocs = make(map[string]map[string]struct{})
	ix.docTerms = make(map[string]map[domain.SearchField][]string)

	for _, doc := range docs {
		if doc.ID == "" {
			continue
		}
		if _, exists := ix.docs[doc.ID]; exists {
			ix.unindex(doc.ID)
		} else {
			ix.order[doc.ID] = ix.next
			ix.next++
		}
		ix.index(doc)
	}
}

// index adds one document's postings. Caller holds the write lock.
func (ix *Index) index(doc domain.Document) {
	ix.docs[doc.ID] = doc
	perField := make(map[domain.SearchField][]string)

	for _, f := range domain.AllFields() {
		terms := ix.tok.Tokenize(doc.Field(f))
		if len(terms) == 0 {
			continue
		}
		fieldIndex := ix.fields[f]
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			p, ok := fieldIndex[t]
			if !ok {
				p = make(posting)
				fieldIndex[t] = p
			}
			p[doc.ID]++
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				perField[f] = append(perField[f], t)
			}
			set, ok := ix.termDocs[t]
			if !ok {
				set = make(map[string]struct{})
				ix.termDocs[t] = set
			}
			set[doc.ID] = struct{}{}
		}
	}

	ix.docTerms[doc.ID] = perField
}

// unindex removes one document's postings. Caller holds the write lock.
func (ix *Index) unindex(id string) {
	for f, terms := range ix.docTerms[id] {
		fieldIndex := ix.fields[f]
		for _, t := range terms {
			p := fieldIndex[t]
			delete(p, id)
			if len(p) == 0 {
				delete(fieldIndex, t)
			}
		}
	}
	for t, set := range ix.termDocs {
		delete(set, id)
		if len(set) == 0 {
			delete(ix.termDocs, t)
		}
	}
	delete(ix.docTerms, id)
	delete(ix.docs, id)
}

// Size returns the number of indexed documents.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Document returns the indexed document with the given ID.
func (ix *Index) Document(id string) (domain.Document, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.docs[id]
	return doc, ok
}

// Position returns the insertion order of a document, for deterministic
// tie-breaking. Unknown IDs sort last.
func (ix *Index) Position(id string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pos, ok := ix.order[id]
	if !ok {
		return int(^uint(0) >> 1)
	}
	return pos
}

// Frequency returns how often term occurs in the given field of the
// given document. Zero means no match.
func (ix *Index) Frequency(field domain.SearchField, term, docID string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.fields[field][term][docID]
}

// Candidates returns the IDs of documents containing term in field.
func (ix *Index) Candidates(field domain.SearchField, term string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p := ix.fields[field][term]
	if len(p) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	return ids
}

// TermsWithPrefix returns the indexed terms in field that start with
// prefix but are not prefix itself. This backs partial token matching
// in non-exact mode. Results are sorted for determinism.
func (ix *Index) TermsWithPrefix(field domain.SearchField, prefix string) []string {
	if prefix == "" {
		return nil
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var terms []string
	for t := range ix.fields[field] {
		if t != prefix && strings.HasPrefix(t, prefix) {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	return terms
}

// DocFreq returns the number of documents containing term in any field.
func (ix *Index) DocFreq(term string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.termDocs[term])
}
