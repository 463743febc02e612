package jsonstorage

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/gissleh/tawngbu"
	"os"
	"sync"
)

// New creates an empty storage. With an empty path nothing is ever written to disk.
func New(path string) *Storage {
	return &Storage{
		path:     path,
		readOnly: false,
		values:   make(map[string]string, 64),
	}
}

func FromData(path string, readOnly bool, data Data) *Storage {
	values := make(map[string]string, len(data.Values))
	for k, v := range data.Values {
		values[k] = v
	}

	return &Storage{
		path:     path,
		readOnly: readOnly,
		values:   values,
	}
}

// Open loads the file at path. A missing file gives an empty storage that will create it
// on the first write.
func Open(path string, readOnly bool) (*Storage, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		storage := New(path)
		storage.readOnly = readOnly
		return storage, nil
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, err
	}

	return FromData(path, readOnly, data), nil
}

type Storage struct {
	mu       sync.Mutex
	path     string
	readOnly bool
	values   map[string]string
}

type Data struct {
	Values map[string]string `json:"values"`
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores the value and writes the whole file through before returning.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if s.readOnly {
		return tawngbu.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return s.writeToFile()
}

func (s *Storage) writeToFile() error {
	if s.path == "" {
		return nil
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")

	return enc.Encode(Data{Values: s.values})
}
