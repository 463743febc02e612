package tawngbu

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"strings"
)

type LexiconEntry struct {
	Word       string `json:"word" yaml:"word"`
	Definition string `json:"definition" yaml:"definition"`
}

// Lexicon is the immutable headword → definition mapping. The insertion order of the
// source is kept, since partial matches are reported in that order.
type Lexicon struct {
	words       []string
	definitions map[string]string
	folded      []string
	byFolded    map[string][]int
}

func NewLexicon(entries []LexiconEntry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLexicon
	}

	lex := &Lexicon{
		words:       make([]string, 0, len(entries)),
		definitions: make(map[string]string, len(entries)),
		folded:      make([]string, 0, len(entries)),
		byFolded:    make(map[string][]int, len(entries)),
	}

	for _, entry := range entries {
		if entry.Word == "" {
			return nil, &ParseError{Reason: "empty headword"}
		}
		if _, exists := lex.definitions[entry.Word]; exists {
			return nil, &ParseError{Key: entry.Word, Reason: "duplicate headword"}
		}

		folded := FoldCase(entry.Word)
		lex.byFolded[folded] = append(lex.byFolded[folded], len(lex.words))
		lex.words = append(lex.words, entry.Word)
		lex.folded = append(lex.folded, folded)
		lex.definitions[entry.Word] = entry.Definition
	}

	return lex, nil
}

func (l *Lexicon) Len() int {
	return len(l.words)
}

func (l *Lexicon) Definition(word string) (string, bool) {
	def, ok := l.definitions[word]
	return def, ok
}

func (l *Lexicon) Has(word string) bool {
	_, ok := l.definitions[word]
	return ok
}

// Entries returns every headword and definition in source order.
func (l *Lexicon) Entries() []LexiconEntry {
	res := make([]LexiconEntry, 0, len(l.words))
	for _, word := range l.words {
		res = append(res, LexiconEntry{Word: word, Definition: l.definitions[word]})
	}

	return res
}

// Lookup finds the headword matching a normalized query. A verbatim match wins over
// headwords that only match after case folding.
func (l *Lexicon) Lookup(query string) (string, bool) {
	if _, ok := l.definitions[query]; ok {
		return query, true
	}

	indices := l.byFolded[query]
	if len(indices) == 0 {
		return "", false
	}

	return l.words[indices[0]], true
}

// FoldCase lower-cases s the same way queries are normalized.
func FoldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeQuery trims and lower-cases raw user input.
func NormalizeQuery(raw string) string {
	return FoldCase(strings.TrimSpace(raw))
}
