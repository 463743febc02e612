package tawngbu

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestExtractTargetWords(t *testing.T) {
	table := []struct {
		Label      string
		Definition string
		Expected   []string
	}{
		{"Drops digit-start, uppercase and short fragments", "Run (v.) - 123abc tlan!", []string{"tlan"}},
		{"Deduplicates within a definition", "tui; tui thianghlim", []string{"tui", "thianghlim"}},
		{"Punctuation splits words", "hmun=hmun_dang/zawng~zawng", []string{"hmun", "dang", "zawng"}},
		{"Non-target letters are rejected", "ṭawng ram", []string{"ram"}},
		{"Script range is accepted", "ကျောင်း sikul", []string{"ကျောင်း", "sikul"}},
		{"Empty definition", "", []string{}},
	}

	for _, row := range table {
		t.Run(row.Label, func(t *testing.T) {
			assert.Equal(t, row.Expected, ExtractTargetWords(row.Definition, MizoScript))
		})
	}

	t.Run("nil_script_is_latin_only", func(t *testing.T) {
		assert.Equal(t, []string{"sikul"}, ExtractTargetWords("ကျောင်း sikul", nil))
	})
}

func TestBuildReverseIndex(t *testing.T) {
	lex := testLexicon(t)
	rev := BuildReverseIndex(lex, MizoScript)

	assert.Equal(t, []string{"lehkhabu", "tlan", "ram", "tui", "thianghlim", "dahna"}, rev.Keys())
	assert.Equal(t, 6, rev.Len())
	assert.Equal(t, []ReverseEntry{
		{Headword: "book", FullDefinition: "lehkhabu"},
		{Headword: "booklet", FullDefinition: "lehkhabu te"},
		{Headword: "bookshelf", FullDefinition: "lehkhabu dahna"},
	}, rev.Entries("lehkhabu"))
	assert.Empty(t, rev.Entries("missing"))

	t.Run("round_trip", func(t *testing.T) {
		for _, entry := range lex.Entries() {
			for _, target := range ExtractTargetWords(entry.Definition, MizoScript) {
				found := false
				for _, rEntry := range rev.Entries(target) {
					if rEntry.Headword == entry.Word {
						found = true
						assert.Equal(t, entry.Definition, rEntry.FullDefinition)
					}
				}

				assert.True(t, found, "%s should map back to %s", target, entry.Word)
			}
		}
	})
}
