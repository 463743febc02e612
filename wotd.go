package tawngbu

import (
	"math/rand/v2"
	"time"
)

const (
	MaxWotdHistory = 7
	// DateLayout is the calendar-day format used for word-of-the-day bookkeeping.
	DateLayout = "2006-01-02"
)

type WotdSelection struct {
	Word string `json:"word"`
	Date string `json:"date"`
}

// IsFor reports whether the selection was made on the calendar day of t, in t's location.
func (s *WotdSelection) IsFor(t time.Time) bool {
	return s.Word != "" && s.Date == t.Format(DateLayout)
}

type WotdRecord struct {
	Date       string `json:"date"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// WotdHistory is most-recent-first and holds at most one record per date.
type WotdHistory []WotdRecord

// Push prepends the record, replacing any earlier record for the same date.
func (h WotdHistory) Push(record WotdRecord) WotdHistory {
	res := make(WotdHistory, 0, MaxWotdHistory)
	res = append(res, record)
	for _, existing := range h {
		if len(res) == MaxWotdHistory {
			break
		}
		if existing.Date != record.Date {
			res = append(res, existing)
		}
	}

	return res
}

// PickRandomWord picks a headword uniformly at random. rnd may be nil.
func PickRandomWord(lex *Lexicon, rnd *rand.Rand) string {
	if lex.Len() == 0 {
		return ""
	}

	if rnd == nil {
		return lex.words[rand.IntN(len(lex.words))]
	}

	return lex.words[rnd.IntN(len(lex.words))]
}
