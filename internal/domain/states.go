package domain

import "strings"

// StateEntry is one entry of the GST state registry.
type StateEntry struct {
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}

// StateRegistry is the ordered name-to-code mapping of Indian states and
// union territories. It is loaded once per session and immutable thereafter.
type StateRegistry struct {
	entries []StateEntry
	byName  map[string]string // lowercased name -> code
}

// NewStateRegistry builds a registry from entries, preserving their order.
func NewStateRegistry(entries []StateEntry) *StateRegistry {
	r := &StateRegistry{
		entries: append([]StateEntry(nil), entries...),
		byName:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		r.byName[strings.ToLower(e.Name)] = e.Code
	}
	return r
}

// CodeFor returns the state code for a state name, case-insensitively.
func (r *StateRegistry) CodeFor(name string) (string, bool) {
	code, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// NameForCode returns the state name for a 2-digit code.
func (r *StateRegistry) NameForCode(code string) (string, bool) {
	for _, e := range r.entries {
		if e.Code == code {
			return e.Name, true
		}
	}
	return "", false
}

// Entries returns the registry entries in load order.
func (r *StateRegistry) Entries() []StateEntry {
	return append([]StateEntry(nil), r.entries...)
}

// Len returns the number of registered states.
func (r *StateRegistry) Len() int { return len(r.entries) }
