package service

import (
	"context"
	"github.com/gissleh/tawngbu"
)

type WotdView struct {
	Word       string              `json:"word"`
	Definition string              `json:"definition"`
	Date       string              `json:"date"`
	History    tawngbu.WotdHistory `json:"history"`
}

// WordOfTheDay returns today's word, picking and persisting a new one the first time it
// is asked for on a calendar day. The selection is shared by all profiles.
func (s *Service) WordOfTheDay(ctx context.Context) (*WotdView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var view *WotdView
	err := s.update(ctx, []string{keyCurrentWotd, keyWotdDate, keyWotdHistory}, func(storage Storage) error {
		var err error
		view, err = s.wordOfTheDay(ctx, storage)
		return err
	})

	return view, err
}

func (s *Service) wordOfTheDay(ctx context.Context, storage Storage) (*WotdView, error) {
	now := s.now()

	var selection tawngbu.WotdSelection
	if _, err := s.loadRaw(ctx, storage, keyCurrentWotd, &selection.Word); err != nil {
		return nil, err
	}
	if _, err := s.loadRaw(ctx, storage, keyWotdDate, &selection.Date); err != nil {
		return nil, err
	}

	history := tawngbu.WotdHistory{}
	if _, err := s.load(ctx, storage, keyWotdHistory, &history); err != nil {
		return nil, err
	}

	var persistErr error
	if !selection.IsFor(now) || !s.Lexicon.Has(selection.Word) {
		word := tawngbu.PickRandomWord(s.Lexicon, s.Rand)
		definition, _ := s.Lexicon.Definition(word)

		selection = tawngbu.WotdSelection{Word: word, Date: now.Format(tawngbu.DateLayout)}
		history = history.Push(tawngbu.WotdRecord{
			Date:       selection.Date,
			Word:       word,
			Definition: definition,
		})

		persistErr = s.saveWotd(ctx, storage, selection, history)
		s.Log().Info("Word of the day selected", "word", word, "date", selection.Date)
	}

	definition, _ := s.Lexicon.Definition(selection.Word)

	return &WotdView{
		Word:       selection.Word,
		Definition: definition,
		Date:       selection.Date,
		History:    history,
	}, persistErr
}

func (s *Service) saveWotd(ctx context.Context, storage Storage, selection tawngbu.WotdSelection, history tawngbu.WotdHistory) error {
	if err := storage.Set(ctx, keyCurrentWotd, selection.Word); err != nil {
		return s.persistenceError("write", keyCurrentWotd, err)
	}
	if err := storage.Set(ctx, keyWotdDate, selection.Date); err != nil {
		return s.persistenceError("write", keyWotdDate, err)
	}

	return s.save(ctx, storage, keyWotdHistory, history)
}

// loadRaw reads a value stored as a plain string rather than JSON.
func (s *Service) loadRaw(ctx context.Context, storage Storage, key string, target *string) (bool, error) {
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return false, s.persistenceError("read", key, err)
	}

	*target = raw
	return ok, nil
}
