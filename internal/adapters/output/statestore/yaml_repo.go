package statestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLRepository persists the session state document as a YAML file of
// sections mapping keys to string values. It implements
// ports.StateRepository. Mutations stay in memory until Commit, which
// replaces the file atomically. Single-process use is assumed; there is no
// file locking.
type YAMLRepository struct {
	path string
	mu   sync.RWMutex
	doc  map[string]map[string]string
}

// NewYAMLRepository loads the document at path, starting empty when the file
// does not exist yet.
func NewYAMLRepository(path string) (*YAMLRepository, error) {
	r := &YAMLRepository{
		path: path,
		doc:  make(map[string]map[string]string),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &r.doc); err != nil {
		return nil, fmt.Errorf("state file %s is not parseable: %w", path, err)
	}
	if r.doc == nil {
		r.doc = make(map[string]map[string]string)
	}
	return r, nil
}

// Get returns the value under section/key and whether it exists.
func (r *YAMLRepository) Get(section, key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sec, ok := r.doc[section]
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	return v, ok
}

// Set stores a value, creating the section when missing.
func (r *YAMLRepository) Set(section, key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sec, ok := r.doc[section]
	if !ok {
		sec = make(map[string]string)
		r.doc[section] = sec
	}
	sec[key] = value
}

// Sections lists section names with the given prefix.
func (r *YAMLRepository) Sections(prefix string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for name := range r.doc {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, name)
		}
	}
	return out
}

// DeleteSection removes a whole section and its keys.
func (r *YAMLRepository) DeleteSection(section string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.doc, section)
}

// Commit writes the document to disk, via a temp file and rename so a crash
// mid-write never truncates the previous state.
func (r *YAMLRepository) Commit() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(r.doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
