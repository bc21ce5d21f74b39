package ports

// StateRepository is the persisted session state: a flat section-keyed
// key-value document with one cloud section and one section per hub.
// Mutations stay in memory until Commit. Implementations must be safe for
// concurrent use but provide no cross-process coordination.
type StateRepository interface {
	// Get returns the value under section/key and whether it exists.
	Get(section, key string) (string, bool)
	// Set stores a value, creating the section when missing.
	Set(section, key, value string)
	// Sections lists section names with the given prefix, in unspecified
	// order.
	Sections(prefix string) []string
	// DeleteSection removes a whole section and its keys.
	DeleteSection(section string)
	// Commit writes pending state to the backing store.
	Commit() error
}
