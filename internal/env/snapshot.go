package env

import "sort"

// Snapshot is an immutable view of environment variables captured once at
// startup. A variable that is absent is distinct from one set to the empty
// string.
type Snapshot struct {
	vars map[string]string
}

// FromMap creates a Snapshot from the given map. The input is copied so later
// changes to it are not observed by the snapshot.
func FromMap(vars map[string]string) Snapshot {
	return Snapshot{vars: copyStringMap(vars)}
}

// FromEnviron creates a Snapshot from "KEY=VALUE" entries as returned by
// os.Environ. Entries without a key are ignored; later duplicates win.
func FromEnviron(entries []string) Snapshot {
	vars := make(map[string]string, len(entries))

	for _, entry := range entries {
		key, value := splitEnvEntry(entry)
		if key != "" {
			vars[key] = value
		}
	}

	return Snapshot{vars: vars}
}

// Lookup returns the value of name and whether it is set at all.
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Get returns the value of name, or the empty string when it is unset.
func (s Snapshot) Get(name string) string {
	return s.vars[name]
}

// Present reports whether name is set to a non-empty value.
func (s Snapshot) Present(name string) bool {
	return s.vars[name] != ""
}

// GetOr returns the value of name when present, otherwise fallback.
func (s Snapshot) GetOr(name string, fallback string) string {
	if v := s.vars[name]; v != "" {
		return v
	}
	return fallback
}

// Len returns the number of variables in the snapshot.
func (s Snapshot) Len() int {
	return len(s.vars)
}

// Overlay returns a new Snapshot with over applied on top of s. Values in
// over take precedence. Neither s nor over is mutated.
func (s Snapshot) Overlay(over map[string]string) Snapshot {
	merged := copyStringMap(s.vars)
	for k, v := range over {
		merged[k] = v
	}
	return Snapshot{vars: merged}
}

// Map returns a copy of the snapshot contents.
func (s Snapshot) Map() map[string]string {
	return copyStringMap(s.vars)
}

// Names returns the sorted variable names in the snapshot.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// splitEnvEntry splits a "KEY=VALUE" string into key and value.
// If there is no "=" separator, returns the full string as key with
// an empty value.
func splitEnvEntry(entry string) (string, string) {
	for i := range entry {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:]
		}
	}

	return entry, ""
}

// copyStringMap creates a shallow copy of a string map.
func copyStringMap(src map[string]string) map[string]string {
	result := make(map[string]string, len(src))
	for k, v := range src {
		result[k] = v
	}
	return result
}
