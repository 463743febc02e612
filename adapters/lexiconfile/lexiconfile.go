// Package lexiconfile reads the raw headword → definition mapping from JSON or YAML.
// Both decoders keep the key order of the file, which becomes the search scan order.
package lexiconfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gissleh/tawngbu"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Open reads and validates the lexicon at path. Every failure is a *tawngbu.LoadError.
func Open(path string) (*tawngbu.Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &tawngbu.LoadError{Source: path, Err: err}
	}
	defer file.Close()

	lex, err := Read(file, FormatFromPath(path))
	if err != nil {
		return nil, &tawngbu.LoadError{Source: path, Err: err}
	}

	return lex, nil
}

func Read(r io.Reader, format Format) (*tawngbu.Lexicon, error) {
	var entries []tawngbu.LexiconEntry
	var err error

	switch format {
	case FormatJSON:
		entries, err = decodeJSON(r)
	case FormatYAML:
		entries, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("unsupported lexicon format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return tawngbu.NewLexicon(entries)
}

func decodeJSON(r io.Reader) ([]tawngbu.LexiconEntry, error) {
	dec := json.NewDecoder(r)

	token, err := dec.Token()
	if err != nil {
		return nil, &tawngbu.ParseError{Reason: err.Error()}
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, &tawngbu.ParseError{Reason: "top level value is not an object"}
	}

	entries := make([]tawngbu.LexiconEntry, 0, 1024)
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, &tawngbu.ParseError{Reason: err.Error()}
		}
		key, _ := token.(string)

		token, err = dec.Token()
		if err != nil {
			return nil, &tawngbu.ParseError{Key: key, Reason: err.Error()}
		}
		value, ok := token.(string)
		if !ok {
			return nil, &tawngbu.ParseError{Key: key, Reason: "definition is not a string"}
		}

		entries = append(entries, tawngbu.LexiconEntry{Word: key, Definition: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &tawngbu.ParseError{Reason: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &tawngbu.ParseError{Reason: "trailing data after object"}
	}

	return entries, nil
}

func decodeYAML(r io.Reader) ([]tawngbu.LexiconEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &tawngbu.ParseError{Reason: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &tawngbu.ParseError{Reason: "top level value is not a mapping"}
	}

	mapping := doc.Content[0]
	entries := make([]tawngbu.LexiconEntry, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &tawngbu.ParseError{Reason: fmt.Sprintf("line %d: headword is not a scalar", key.Line)}
		}
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
			return nil, &tawngbu.ParseError{Key: key.Value, Reason: "definition is not a string"}
		}

		entries = append(entries, tawngbu.LexiconEntry{Word: key.Value, Definition: value.Value})
	}

	return entries, nil
}
