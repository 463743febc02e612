package tawngbu

import (
	"fmt"
	"strings"
)

const (
	MaxForwardPartialMatches = 10
	MaxReversePartialKeys    = 8
)

type Direction int

const (
	// Forward looks up headwords and returns their definitions.
	Forward Direction = iota
	// Reverse looks up target-language words and returns the headwords using them.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "english", "en":
		return Forward, nil
	case "reverse", "mizo", "lus":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

type SearchResult struct {
	Word              string `json:"word"`
	Definition        string `json:"definition"`
	MatchedTargetWord string `json:"matchedTargetWord,omitempty"`
	IsExact           bool   `json:"isExact"`
}

// Search runs a normalized query against the lexicon (Forward) or the reverse index
// (Reverse). Exact matches come first, followed by partial matches in source order.
func Search(query string, direction Direction, lex *Lexicon, rev *ReverseIndex) []SearchResult {
	if query == "" {
		return nil
	}

	switch direction {
	case Forward:
		return searchForward(query, lex)
	case Reverse:
		return searchReverse(query, rev)
	default:
		return nil
	}
}

func searchForward(query string, lex *Lexicon) []SearchResult {
	res := make([]SearchResult, 0, MaxForwardPartialMatches+1)

	exactWord, hasExact := lex.Lookup(query)
	if hasExact {
		res = append(res, SearchResult{
			Word:       exactWord,
			Definition: lex.definitions[exactWord],
			IsExact:    true,
		})
	}

	// The cap counts the exact entry as well, so it may leave fewer than ten partials.
	taken := 0
	for i, folded := range lex.folded {
		if taken >= MaxForwardPartialMatches {
			break
		}
		if !strings.Contains(folded, query) {
			continue
		}

		taken += 1
		word := lex.words[i]
		if hasExact && word == exactWord {
			continue
		}

		res = append(res, SearchResult{
			Word:       word,
			Definition: lex.definitions[word],
		})
	}

	return res
}

func searchReverse(query string, rev *ReverseIndex) []SearchResult {
	res := make([]SearchResult, 0, 16)

	for _, entry := range rev.entries[query] {
		res = append(res, SearchResult{
			Word:              entry.Headword,
			Definition:        entry.FullDefinition,
			MatchedTargetWord: query,
			IsExact:           true,
		})
	}

	taken := 0
	for _, key := range rev.keys {
		if taken >= MaxReversePartialKeys {
			break
		}
		if !strings.Contains(key, query) {
			continue
		}

		taken += 1
		if key == query {
			continue
		}

		for _, entry := range rev.entries[key] {
			res = append(res, SearchResult{
				Word:              entry.Headword,
				Definition:        entry.FullDefinition,
				MatchedTargetWord: key,
			})
		}
	}

	return res
}
