package service

import (
	"context"
	"github.com/gissleh/tawngbu"
)

// Activity returns the profile's favorites and recent searches. The empty profile is the
// single local user.
func (s *Service) Activity(ctx context.Context, profile string) (tawngbu.UserActivity, error) {
	keys, err := activityKeysFor(profile)
	if err != nil {
		return tawngbu.UserActivity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadActivity(ctx, s.Storage, keys)
}

func (s *Service) IsFavorite(ctx context.Context, profile, word string) (bool, error) {
	activity, err := s.Activity(ctx, profile)
	if err != nil {
		return false, err
	}

	return activity.IsFavorite(word), nil
}

// Favorites lists the profile's favorites that exist in the lexicon, with definitions.
func (s *Service) Favorites(ctx context.Context, profile string) ([]tawngbu.LexiconEntry, error) {
	activity, err := s.Activity(ctx, profile)
	if err != nil {
		return nil, err
	}

	res := make([]tawngbu.LexiconEntry, 0, len(activity.Favorites))
	for _, word := range activity.Favorites {
		if definition, ok := s.Lexicon.Definition(word); ok {
			res = append(res, tawngbu.LexiconEntry{Word: word, Definition: definition})
		}
	}

	return res, nil
}

// ToggleFavorite flips the favorite state of word and persists the result. On a write
// failure the updated activity is still returned next to a *tawngbu.PersistenceError.
func (s *Service) ToggleFavorite(ctx context.Context, profile, word string) (bool, tawngbu.UserActivity, error) {
	added := false
	activity, err := s.modifyActivity(ctx, profile, func(activity *tawngbu.UserActivity) {
		added = activity.ToggleFavorite(word)
	})

	return added, activity, err
}

func (s *Service) AddRecentSearch(ctx context.Context, profile, word string) (tawngbu.UserActivity, error) {
	return s.modifyActivity(ctx, profile, func(activity *tawngbu.UserActivity) {
		activity.AddRecentSearch(word)
	})
}

func (s *Service) modifyActivity(ctx context.Context, profile string, modify func(activity *tawngbu.UserActivity)) (tawngbu.UserActivity, error) {
	keys, err := activityKeysFor(profile)
	if err != nil {
		return tawngbu.UserActivity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var activity tawngbu.UserActivity
	err = s.update(ctx, []string{keys.favorites, keys.recent}, func(storage Storage) error {
		loaded, err := s.loadActivity(ctx, storage, keys)
		if err != nil {
			return err
		}

		modify(&loaded)
		activity = loaded

		return s.saveActivity(ctx, storage, keys, activity)
	})

	return activity, err
}

type activityKeys struct {
	favorites string
	recent    string
}

func activityKeysFor(profile string) (activityKeys, error) {
	favorites, err := profileKey(profile, keyFavorites)
	if err != nil {
		return activityKeys{}, err
	}
	recent, err := profileKey(profile, keyRecentSearches)
	if err != nil {
		return activityKeys{}, err
	}

	return activityKeys{favorites: favorites, recent: recent}, nil
}

func (s *Service) loadActivity(ctx context.Context, storage Storage, keys activityKeys) (tawngbu.UserActivity, error) {
	activity := tawngbu.UserActivity{Favorites: []string{}, RecentSearches: []string{}}
	if _, err := s.load(ctx, storage, keys.favorites, &activity.Favorites); err != nil {
		return tawngbu.UserActivity{}, err
	}
	if _, err := s.load(ctx, storage, keys.recent, &activity.RecentSearches); err != nil {
		return tawngbu.UserActivity{}, err
	}

	return activity, nil
}

func (s *Service) saveActivity(ctx context.Context, storage Storage, keys activityKeys, activity tawngbu.UserActivity) error {
	if err := s.save(ctx, storage, keys.favorites, activity.Favorites); err != nil {
		return err
	}

	return s.save(ctx, storage, keys.recent, activity.RecentSearches)
}
