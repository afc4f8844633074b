// Package skills holds the skill dictionary and extracts required skills from job descriptions.
package skills

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

//go:embed dictionary.json dictionary.schema.json
var dictionaryFiles embed.FS

const (
	defaultDictionaryFile = "dictionary.json"
	schemaFile            = "dictionary.schema.json"
)

// Dictionary is the immutable set of known skills plus the alias table.
// It is built once and is safe for concurrent reads.
type Dictionary struct {
	skills   []string
	patterns map[string]*regexp.Regexp   // lowercased skill -> whole-word pattern
	aliases  map[string][]string         // lowercased skill -> lowercased aliases
	aliasRes map[string][]*regexp.Regexp // lowercased skill -> alias patterns
}

// dictionaryFile is the on-disk representation of a dictionary.
type dictionaryFile struct {
	Skills  []string            `json:"skills"`
	Aliases map[string][]string `json:"aliases,omitempty"`
}

// NewDictionary builds a dictionary from an ordered skill list and an alias table.
// Skills and aliases that normalize to nothing are dropped. Alias keys and values are lowercased.
func NewDictionary(skillNames []string, aliases map[string][]string) *Dictionary {
	d := &Dictionary{
		skills:   make([]string, 0, len(skillNames)),
		patterns: make(map[string]*regexp.Regexp, len(skillNames)),
		aliases:  make(map[string][]string, len(aliases)),
		aliasRes: make(map[string][]*regexp.Regexp, len(aliases)),
	}

	for _, name := range skillNames {
		name = strings.TrimSpace(name)
		pattern := parsing.WholeWordPattern(name)
		if pattern == nil {
			continue
		}
		d.skills = append(d.skills, name)
		lower := strings.ToLower(name)
		if _, exists := d.patterns[lower]; !exists {
			d.patterns[lower] = pattern
		}
	}

	for skill, forms := range aliases {
		key := strings.ToLower(strings.TrimSpace(skill))
		for _, form := range forms {
			form = strings.ToLower(strings.TrimSpace(form))
			pattern := parsing.WholeWordPattern(form)
			if pattern == nil {
				continue
			}
			d.aliases[key] = append(d.aliases[key], form)
			d.aliasRes[key] = append(d.aliasRes[key], pattern)
		}
	}

	return d
}

// Len returns the number of skills in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.skills)
}

// Skills returns a copy of the ordered skill list.
func (d *Dictionary) Skills() []string {
	out := make([]string, len(d.skills))
	copy(out, d.skills)
	return out
}

// Aliases returns the alternate surface forms registered for skill (case-insensitive).
func (d *Dictionary) Aliases(skill string) []string {
	forms := d.aliases[strings.ToLower(skill)]
	out := make([]string, len(forms))
	copy(out, forms)
	return out
}

// AliasTable returns a copy of the full alias table.
func (d *Dictionary) AliasTable() map[string][]string {
	out := make(map[string][]string, len(d.aliases))
	for skill, forms := range d.aliases {
		out[skill] = append([]string(nil), forms...)
	}
	return out
}

// Contains reports whether skill occurs as a whole word in normalizedText.
// normalizedText must be the output of parsing.NormalizeText.
func (d *Dictionary) Contains(normalizedText, skill string) bool {
	if normalizedText == "" {
		return false
	}
	if pattern, ok := d.patterns[strings.ToLower(skill)]; ok {
		return pattern.MatchString(normalizedText)
	}
	return parsing.ContainsWholeWord(normalizedText, skill)
}

// MatchAlias returns the first alias of skill that occurs as a whole word in normalizedText.
func (d *Dictionary) MatchAlias(normalizedText, skill string) (string, bool) {
	if normalizedText == "" {
		return "", false
	}
	key := strings.ToLower(skill)
	for i, pattern := range d.aliasRes[key] {
		if pattern.MatchString(normalizedText) {
			return d.aliases[key][i], true
		}
	}
	return "", false
}

// DefaultDictionary returns the dictionary embedded in the binary.
func DefaultDictionary() (*Dictionary, error) {
	data, err := dictionaryFiles.ReadFile(defaultDictionaryFile)
	if err != nil {
		return nil, &DictionaryError{Source: defaultDictionaryFile, Message: "failed to read embedded dictionary", Cause: err}
	}
	return ParseDictionary(defaultDictionaryFile, data)
}

// LoadDictionary reads and validates a dictionary file.
// An empty path selects the embedded default dictionary.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return DefaultDictionary()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DictionaryError{Source: path, Message: "dictionary file not found", Cause: err}
		}
		return nil, &DictionaryError{Source: path, Message: "failed to read dictionary file", Cause: err}
	}
	return ParseDictionary(path, data)
}

// ParseDictionary validates data against the dictionary schema and builds a Dictionary.
// source names the data in error messages.
func ParseDictionary(source string, data []byte) (*Dictionary, error) {
	schema, err := dictionaryFiles.ReadFile(schemaFile)
	if err != nil {
		return nil, &DictionaryError{Source: schemaFile, Message: "failed to read embedded schema", Cause: err}
	}

	if err := schemas.ValidateBytes(schemaFile, schema, data); err != nil {
		return nil, &DictionaryError{Source: source, Message: "dictionary does not match schema", Cause: err}
	}

	var file dictionaryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &DictionaryError{Source: source, Message: "failed to parse dictionary JSON", Cause: err}
	}

	return NewDictionary(file.Skills, file.Aliases), nil
}

// MarshalJSON encodes the dictionary in its file representation.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(dictionaryFile{Skills: d.Skills(), Aliases: d.AliasTable()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dictionary: %w", err)
	}
	return data, nil
}
