package tawngbu

import (
	"errors"
	"fmt"
)

var ErrEmptyLexicon = errors.New("lexicon has no entries")
var ErrEntryNotFound = errors.New("dictionary entry not found")
var ErrEmptyQuery = errors.New("search query is empty")
var ErrReadOnly = errors.New("modifications are not allowed")
var ErrInvalidProfile = errors.New("invalid profile id")
var ErrUnknownDirection = errors.New("unknown search direction")

// ParseError is returned when the raw lexicon is not a flat string-to-string mapping.
type ParseError struct {
	Key    string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Key == "" {
		return "malformed lexicon: " + e.Reason
	}

	return fmt.Sprintf("malformed lexicon at %q: %s", e.Key, e.Reason)
}

// LoadError wraps anything that prevented the lexicon from being fetched or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load lexicon from %s: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PersistenceError is a failed read or write against the key-value store.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
