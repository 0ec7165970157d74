// Package filestore implements the device key-value store on top of a
// single JSON file with an in-memory cache and write-through persistence.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/hoyapp/hoygo/internal/store"
)

// FileStore keeps the whole key space in memory and rewrites the
// backing file on every mutation. The data sets involved (tokens,
// flags, counters) are tiny, so the simple strategy holds.
type FileStore struct {
	mu       sync.RWMutex
	fileName string
	cache    map[string]json.RawMessage
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache map[string]json.RawMessage) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}

	return nil
}

func parseJSONFile(fileName string, cache *map[string]json.RawMessage) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(cache)
}

// New opens (creating if necessary) the store backed by fileName.
func New(fileName string) (*FileStore, error) {
	fs := &FileStore{
		fileName: fileName,
		cache:    map[string]json.RawMessage{},
	}

	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		if err := initDBFile(fileName); err != nil {
			return nil, err
		}
	}

	if err := parseJSONFile(fileName, &fs.cache); err != nil {
		return nil, err
	}
	if fs.cache == nil {
		fs.cache = map[string]json.RawMessage{}
	}

	return fs, nil
}

// Get decodes the value stored under key into out.
func (fs *FileStore) Get(key string, out any) error {
	fs.mu.RLock()
	raw, ok := fs.cache[key]
	fs.mu.RUnlock()

	if !ok {
		return store.ErrNotFound
	}

	return json.Unmarshal(raw, out)
}

// Set stores value under key and persists the store.
func (fs *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.cache[key] = raw

	return writeToJSONFile(fs.fileName, fs.cache)
}

// Delete removes key and persists the store.
func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.cache[key]; !ok {
		return nil
	}
	delete(fs.cache, key)

	return writeToJSONFile(fs.fileName, fs.cache)
}

// Keys returns all stored keys.
func (fs *FileStore) Keys() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	keys := make([]string, 0, len(fs.cache))
	for k := range fs.cache {
		keys = append(keys, k)
	}

	return keys
}

// Close persists the current state.
func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return writeToJSONFile(fs.fileName, fs.cache)
}
