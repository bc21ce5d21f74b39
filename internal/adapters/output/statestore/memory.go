package statestore

import "sync"

// Memory is an in-memory state repository for tests and embedders that do
// not want on-disk state. Commit is a counted no-op.
type Memory struct {
	mu      sync.RWMutex
	doc     map[string]map[string]string
	commits int
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{doc: make(map[string]map[string]string)}
}

// Get returns the value under section/key and whether it exists.
func (m *Memory) Get(section, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sec, ok := m.doc[section]
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	return v, ok
}

// Set stores a value, creating the section when missing.
func (m *Memory) Set(section, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sec, ok := m.doc[section]
	if !ok {
		sec = make(map[string]string)
		m.doc[section] = sec
	}
	sec[key] = value
}

// Sections lists section names with the given prefix.
func (m *Memory) Sections(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for name := range m.doc {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, name)
		}
	}
	return out
}

// DeleteSection removes a whole section and its keys.
func (m *Memory) DeleteSection(section string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.doc, section)
}

// Commit records that a commit happened.
func (m *Memory) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	return nil
}

// Commits returns how many times Commit has been called.
func (m *Memory) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}
