package tawngbu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MizoScript is the extra code point range accepted in target words, next to a-z.
var MizoScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1000, Hi: 0x109F, Stride: 1},
	},
}

const minTargetWordLength = 3

type ReverseEntry struct {
	Headword       string `json:"headword"`
	FullDefinition string `json:"fullDefinition"`
}

// ReverseIndex maps target-language words back to the headwords whose definitions
// contain them. Keys keep the order in which they were first seen.
type ReverseIndex struct {
	keys    []string
	entries map[string][]ReverseEntry
}

func BuildReverseIndex(lex *Lexicon, script *unicode.RangeTable) *ReverseIndex {
	idx := &ReverseIndex{
		keys:    make([]string, 0, lex.Len()),
		entries: make(map[string][]ReverseEntry, lex.Len()),
	}

	for _, word := range lex.words {
		definition := lex.definitions[word]

		for _, target := range ExtractTargetWords(definition, script) {
			if _, ok := idx.entries[target]; !ok {
				idx.keys = append(idx.keys, target)
			}

			idx.entries[target] = append(idx.entries[target], ReverseEntry{
				Headword:       word,
				FullDefinition: definition,
			})
		}
	}

	return idx
}

func (r *ReverseIndex) Len() int {
	return len(r.keys)
}

// Keys returns the target words in insertion order.
func (r *ReverseIndex) Keys() []string {
	return append(r.keys[:0:0], r.keys...)
}

func (r *ReverseIndex) Entries(target string) []ReverseEntry {
	entries := r.entries[target]
	return append(entries[:0:0], entries...)
}

// ExtractTargetWords splits a definition into the distinct target-language words it
// contains. A nil script only accepts a-z.
func ExtractTargetWords(definition string, script *unicode.RangeTable) []string {
	fields := strings.Fields(strings.Map(stripPunctuation, definition))

	seen := make(map[string]bool, len(fields))
	res := make([]string, 0, len(fields))
	for _, field := range fields {
		if seen[field] || !isTargetWord(field, script) {
			continue
		}

		seen[field] = true
		res = append(res, field)
	}

	return res
}

func stripPunctuation(r rune) rune {
	switch r {
	case '.', ',', '/', '#', '!', '$', '%', '^', '&', '*', ';', ':', '{', '}', '=', '-', '_', '`', '~', '(', ')':
		return ' '
	default:
		return r
	}
}

func isTargetWord(token string, script *unicode.RangeTable) bool {
	if utf8.RuneCountInString(token) < minTargetWordLength {
		return false
	}
	if token[0] >= '0' && token[0] <= '9' {
		return false
	}

	for _, r := range token {
		switch {
		case r >= 'A' && r <= 'Z':
			return false
		case r >= 'a' && r <= 'z':
		case script != nil && unicode.Is(script, r):
		default:
			return false
		}
	}

	return true
}
