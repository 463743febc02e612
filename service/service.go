package service

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/gissleh/tawngbu"
	"github.com/google/uuid"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const (
	keyFavorites      = "dictionaryFavorites"
	keyRecentSearches = "recentSearches"
	keyCurrentWotd    = "currentWotd"
	keyWotdDate       = "wotdDate"
	keyWotdHistory    = "wotdHistory"
)

type Service struct {
	Lexicon *tawngbu.Lexicon
	Reverse *tawngbu.ReverseIndex
	Storage Storage
	Logger  *slog.Logger
	// Now and Rand default to the local wall clock and the global source.
	Now  func() time.Time
	Rand *rand.Rand

	mu sync.Mutex
}

// New builds the reverse index for lex and returns a ready service.
func New(lex *tawngbu.Lexicon, storage Storage, logger *slog.Logger) *Service {
	return &Service{
		Lexicon: lex,
		Reverse: tawngbu.BuildReverseIndex(lex, tawngbu.MizoScript),
		Storage: storage,
		Logger:  logger,
	}
}

func (s *Service) Entry(word string) (*tawngbu.LexiconEntry, error) {
	headword, ok := s.Lexicon.Lookup(tawngbu.NormalizeQuery(word))
	if !ok {
		return nil, tawngbu.ErrEntryNotFound
	}

	definition, _ := s.Lexicon.Definition(headword)
	return &tawngbu.LexiconEntry{Word: headword, Definition: definition}, nil
}

// Search normalizes the query, records it as a recent search for the profile and returns
// the ranked matches. A blank query gives an empty response without touching storage.
func (s *Service) Search(ctx context.Context, profile, rawQuery string, direction tawngbu.Direction) (*SearchResponse, error) {
	query := tawngbu.NormalizeQuery(rawQuery)
	if query == "" {
		return &SearchResponse{Direction: direction, Results: []tawngbu.SearchResult{}}, nil
	}

	_, err := s.AddRecentSearch(ctx, profile, query)
	var persistErr *tawngbu.PersistenceError
	if err != nil && !errors.As(err, &persistErr) {
		return nil, err
	}

	results := tawngbu.Search(query, direction, s.Lexicon, s.Reverse)

	return &SearchResponse{
		Query:     query,
		Direction: direction,
		Exact:     len(results) > 0 && results[0].IsExact,
		Results:   results,
	}, nil
}

func (s *Service) Stats() Stats {
	return Stats{
		Words:       s.Lexicon.Len(),
		TargetTerms: s.Reverse.Len(),
	}
}

func (s *Service) load(ctx context.Context, storage Storage, key string, target any) (bool, error) {
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return false, s.persistenceError("read", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, s.persistenceError("decode", key, err)
	}

	return true, nil
}

func (s *Service) save(ctx context.Context, storage Storage, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return s.persistenceError("encode", key, err)
	}

	if err := storage.Set(ctx, key, string(data)); err != nil {
		return s.persistenceError("write", key, err)
	}

	return nil
}

// update runs fn against the storage, inside Update when the storage is an Updater.
// Failures of the surrounding transaction count as a read when fn never ran and as a write
// when it did.
func (s *Service) update(ctx context.Context, keys []string, fn func(storage Storage) error) error {
	updater, ok := s.Storage.(Updater)
	if !ok {
		return fn(s.Storage)
	}

	ran := false
	var fnErr error
	err := updater.Update(ctx, keys, func(storage Storage) error {
		ran = true
		fnErr = fn(storage)
		return fnErr
	})
	switch {
	case fnErr != nil:
		return fnErr
	case err == nil:
		return nil
	case !ran:
		return s.persistenceError("read", strings.Join(keys, ","), err)
	default:
		return s.persistenceError("write", strings.Join(keys, ","), err)
	}
}

func (s *Service) persistenceError(op, key string, err error) error {
	s.Log().Error("Persistence failure", "op", op, "key", key, "error", err)

	return &tawngbu.PersistenceError{Op: op, Key: key, Err: err}
}

// Log returns the service logger, falling back to the slog default.
func (s *Service) Log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}

	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}

func profileKey(profile, key string) (string, error) {
	if profile == "" {
		return key, nil
	}
	if _, err := uuid.Parse(profile); err != nil {
		return "", tawngbu.ErrInvalidProfile
	}

	return "profile/" + profile + "/" + key, nil
}

type SearchResponse struct {
	Query     string                 `json:"query"`
	Direction tawngbu.Direction      `json:"direction"`
	Exact     bool                   `json:"exact"`
	Results   []tawngbu.SearchResult `json:"results"`
}

type Stats struct {
	Words       int `json:"words"`
	TargetTerms int `json:"targetTerms"`
}
