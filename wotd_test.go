package tawngbu

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"math/rand/v2"
	"testing"
	"time"
)

func TestWotdSelection_IsFor(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	selection := WotdSelection{Word: "book", Date: "2026-10-16"}

	assert.True(t, selection.IsFor(time.Date(2026, 10, 16, 23, 59, 0, 0, loc)))
	assert.False(t, selection.IsFor(time.Date(2026, 10, 17, 0, 1, 0, 0, loc)))
	assert.False(t, (&WotdSelection{Date: "2026-10-16"}).IsFor(time.Date(2026, 10, 16, 12, 0, 0, 0, loc)))
}

func TestWotdHistory_Push(t *testing.T) {
	t.Run("replaces_same_date", func(t *testing.T) {
		history := WotdHistory{{Date: "2026-10-16", Word: "a"}, {Date: "2026-10-15", Word: "b"}}
		history = history.Push(WotdRecord{Date: "2026-10-16", Word: "c"})

		assert.Equal(t, WotdHistory{{Date: "2026-10-16", Word: "c"}, {Date: "2026-10-15", Word: "b"}}, history)
	})

	t.Run("truncates", func(t *testing.T) {
		var history WotdHistory
		for day := 1; day <= 10; day++ {
			history = history.Push(WotdRecord{Date: fmt.Sprintf("2026-10-%02d", day), Word: fmt.Sprint(day)})
		}

		assert.Len(t, history, MaxWotdHistory)
		assert.Equal(t, "2026-10-10", history[0].Date)
		assert.Equal(t, "2026-10-04", history[MaxWotdHistory-1].Date)
	})
}

func TestPickRandomWord(t *testing.T) {
	lex := testLexicon(t)

	for i := 0; i < 20; i++ {
		assert.True(t, lex.Has(PickRandomWord(lex, rand.New(rand.NewPCG(uint64(i), 7)))))
		assert.True(t, lex.Has(PickRandomWord(lex, nil)))
	}

	a := PickRandomWord(lex, rand.New(rand.NewPCG(1, 2)))
	b := PickRandomWord(lex, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a, b)
}
