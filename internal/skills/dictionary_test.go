package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary(t *testing.T) {
	dict, err := DefaultDictionary()
	require.NoError(t, err)

	assert.Greater(t, dict.Len(), 50)
	assert.Contains(t, dict.Skills(), "python")
	assert.Contains(t, dict.Skills(), "machine learning")
	assert.Contains(t, dict.Skills(), "kubernetes")

	assert.Equal(t, []string{"ml"}, dict.Aliases("machine learning"))
	assert.Equal(t, []string{"ai"}, dict.Aliases("Artificial Intelligence"))
	assert.Equal(t, []string{"nlp"}, dict.Aliases("natural language processing"))
	assert.Equal(t, []string{"dl"}, dict.Aliases("deep learning"))
}

func TestDefaultDictionary_AliasKeysAreSkills(t *testing.T) {
	dict, err := DefaultDictionary()
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, s := range dict.Skills() {
		known[s] = true
	}
	for skill := range dict.AliasTable() {
		assert.True(t, known[skill], "alias key %q is not a dictionary skill", skill)
	}
}

func TestNewDictionary_LowercasesAliases(t *testing.T) {
	dict := NewDictionary([]string{"Machine Learning", "  "}, map[string][]string{
		"Machine Learning": {" ML ", ""},
	})

	assert.Equal(t, 1, dict.Len())
	assert.Equal(t, []string{"Machine Learning"}, dict.Skills())
	assert.Equal(t, []string{"ml"}, dict.Aliases("machine learning"))
}

func TestDictionary_SkillsReturnsCopy(t *testing.T) {
	dict := NewDictionary([]string{"python"}, nil)
	got := dict.Skills()
	got[0] = "mutated"
	assert.Equal(t, []string{"python"}, dict.Skills())
}

func TestDictionary_Contains(t *testing.T) {
	dict := NewDictionary([]string{"java", "c++", ".net"}, nil)

	tests := []struct {
		name  string
		text  string
		skill string
		want  bool
	}{
		{"whole word", "i write java daily", "java", true},
		{"not inside longer word", "i write javascript daily", "java", false},
		{"symbol skill", "modern c++ and python", "c++", true},
		{"dotted skill", "built on .net core", ".net", true},
		{"dotted skill glued to word", "built on asp.net core", ".net", false},
		{"unknown skill falls back to pattern", "uses rust", "rust", true},
		{"empty text", "", "java", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dict.Contains(parsing.NormalizeText(tt.text), tt.skill)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDictionary_MatchAlias(t *testing.T) {
	dict := NewDictionary([]string{"machine learning", "ci/cd"}, map[string][]string{
		"machine learning": {"ml"},
		"ci/cd":            {"continuous integration", "continuous delivery"},
	})

	alias, ok := dict.MatchAlias(parsing.NormalizeText("Built ML pipelines"), "Machine Learning")
	assert.True(t, ok)
	assert.Equal(t, "ml", alias)

	alias, ok = dict.MatchAlias(parsing.NormalizeText("Set up continuous\ndelivery"), "ci/cd")
	assert.True(t, ok)
	assert.Equal(t, "continuous delivery", alias)

	_, ok = dict.MatchAlias(parsing.NormalizeText("html templates"), "machine learning")
	assert.False(t, ok)

	_, ok = dict.MatchAlias(parsing.NormalizeText("ml"), "ci/cd")
	assert.False(t, ok)
}

func TestParseDictionary_Valid(t *testing.T) {
	data := []byte(`{"skills": ["go", "rust"], "aliases": {"go": ["golang"]}}`)
	dict, err := ParseDictionary("inline", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, dict.Skills())
	assert.Equal(t, []string{"golang"}, dict.Aliases("go"))
}

func TestParseDictionary_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing skills", `{"aliases": {}}`},
		{"skills not strings", `{"skills": [1, 2]}`},
		{"empty skill", `{"skills": [""]}`},
		{"unknown field", `{"skills": ["go"], "extra": true}`},
		{"empty alias list", `{"skills": ["go"], "aliases": {"go": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDictionary("inline", []byte(tt.data))
			require.Error(t, err)

			var dictErr *DictionaryError
			require.ErrorAs(t, err, &dictErr)
			assert.Equal(t, "inline", dictErr.Source)
		})
	}
}

func TestParseDictionary_MalformedJSON(t *testing.T) {
	_, err := ParseDictionary("broken.json", []byte(`{"skills": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": ["terraform"]}`), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"terraform"}, dict.Skills())
}

func TestLoadDictionary_EmptyPathUsesDefault(t *testing.T) {
	dict, err := LoadDictionary("")
	require.NoError(t, err)

	def, err := DefaultDictionary()
	require.NoError(t, err)
	assert.Equal(t, def.Skills(), dict.Skills())
}

func TestLoadDictionary_NotFound(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var dictErr *DictionaryError
	require.ErrorAs(t, err, &dictErr)
	assert.Contains(t, err.Error(), "not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDictionary_MarshalJSON(t *testing.T) {
	dict := NewDictionary([]string{"go"}, map[string][]string{"go": {"golang"}})
	data, err := dict.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills": ["go"], "aliases": {"go": ["golang"]}}`, string(data))
}
