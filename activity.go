package tawngbu

const MaxRecentSearches = 10

// UserActivity holds one profile's favorites and recent searches. Favorites keep the
// order they were added in.
type UserActivity struct {
	Favorites      []string `json:"favorites"`
	RecentSearches []string `json:"recentSearches"`
}

func (a *UserActivity) IsFavorite(word string) bool {
	for _, fav := range a.Favorites {
		if fav == word {
			return true
		}
	}

	return false
}

// ToggleFavorite removes word if it is a favorite, or adds it and records it as a recent
// search otherwise. It returns whether the word is now a favorite.
func (a *UserActivity) ToggleFavorite(word string) bool {
	if a.IsFavorite(word) {
		a.Favorites = sliceWithout(a.Favorites, word)
		return false
	}

	a.Favorites = append(a.Favorites, word)
	a.AddRecentSearch(word)

	return true
}

func (a *UserActivity) AddRecentSearch(word string) {
	recent := make([]string, 0, MaxRecentSearches)
	recent = append(recent, word)
	for _, existing := range a.RecentSearches {
		if len(recent) == MaxRecentSearches {
			break
		}
		if existing != word {
			recent = append(recent, existing)
		}
	}

	a.RecentSearches = recent
}

func sliceWithout(slice []string, value string) []string {
	res := make([]string, 0, len(slice))
	for _, s := range slice {
		if s != value {
			res = append(res, s)
		}
	}

	return res
}
