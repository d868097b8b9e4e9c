// Package envset models a process environment as an explicit value.
//
// Nothing in this module mutates the real process environment: callers build
// an Env from os.Environ, thread it through the patch and initialization
// steps, and hand Environ() to the next process image.
package envset

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Env is an ordered set of KEY=VALUE entries.
type Env struct {
	entries []string
	fold    bool
}

// FromEnviron copies entries into a new Env. Keys compare case-insensitively on Windows.
func FromEnviron(entries []string) *Env {
	return fromEnviron(entries, runtime.GOOS == "windows")
}

func fromEnviron(entries []string, fold bool) *Env {
	env := &Env{fold: fold, entries: make([]string, 0, len(entries))}
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env.Set(key, value)
	}
	return env
}

// Environ returns a copy of the entries suitable for exec.
func (e *Env) Environ() []string {
	out := make([]string, len(e.entries))
	copy(out, e.entries)
	return out
}

// Clone returns an independent copy of e.
func (e *Env) Clone() *Env {
	return &Env{entries: e.Environ(), fold: e.fold}
}

// Lookup returns the value for key and whether it is present.
func (e *Env) Lookup(key string) (string, bool) {
	if i := e.index(key); i >= 0 {
		_, value, _ := strings.Cut(e.entries[i], "=")
		return value, true
	}
	return "", false
}

// Get returns the value for key, or "" when absent.
func (e *Env) Get(key string) string {
	value, _ := e.Lookup(key)
	return value
}

// Has reports whether key is present, even with an empty value.
func (e *Env) Has(key string) bool {
	return e.index(key) >= 0
}

// Set sets or appends key=value.
func (e *Env) Set(key string, value string) {
	entry := fmt.Sprintf("%s=%s", key, value)
	if i := e.index(key); i >= 0 {
		e.entries[i] = entry
		return
	}
	e.entries = append(e.entries, entry)
}

// Unset removes every entry for key.
func (e *Env) Unset(key string) {
	if key == "" {
		return
	}
	kept := e.entries[:0]
	for _, entry := range e.entries {
		if !e.matches(entry, key) {
			kept = append(kept, entry)
		}
	}
	e.entries = kept
}

// Preserve copies the current value of key to alias when key is present.
// It reports whether a value was preserved.
func (e *Env) Preserve(key string, alias string) bool {
	value, ok := e.Lookup(key)
	if !ok {
		return false
	}
	e.Set(alias, value)
	return true
}

// FillMissing sets each non-empty addition whose key is not already present.
func (e *Env) FillMissing(additions map[string]string) {
	keys := make([]string, 0, len(additions))
	for key := range additions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := additions[key]
		if value == "" || e.Has(key) {
			continue
		}
		e.Set(key, value)
	}
}

// Keys returns the sorted set of keys.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.entries))
	for _, entry := range e.entries {
		key, _, _ := strings.Cut(entry, "=")
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Delta returns the entries of after that are new or changed relative to e,
// plus the keys present in e and missing from after.
func (e *Env) Delta(after *Env) (map[string]string, []string) {
	changed := make(map[string]string)
	for _, key := range after.Keys() {
		value := after.Get(key)
		if old, ok := e.Lookup(key); !ok || old != value {
			changed[key] = value
		}
	}
	var removed []string
	for _, key := range e.Keys() {
		if !after.Has(key) {
			removed = append(removed, key)
		}
	}
	return changed, removed
}

func (e *Env) index(key string) int {
	for i, entry := range e.entries {
		if e.matches(entry, key) {
			return i
		}
	}
	return -1
}

func (e *Env) matches(entry string, key string) bool {
	name, _, ok := strings.Cut(entry, "=")
	if !ok {
		return false
	}
	if e.fold {
		return strings.EqualFold(name, key)
	}
	return name == key
}
