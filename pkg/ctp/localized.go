package ctp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PreferredLocales is the locale chain tried when resolving display text.
var PreferredLocales = []string{"en-GB", "en"}

var errNotAnObject = errors.New("localized string must be a JSON object")

// LocalizedEntry is one locale/value pair.
type LocalizedEntry struct {
	Locale string
	Value  string
}

// LocalizedString maps locale tags to text. Unlike a Go map it keeps the
// order in which locales appear in the document, so "first available" is
// deterministic.
type LocalizedString struct {
	entries []LocalizedEntry
}

// NewLocalizedString builds a value from alternating locale/value arguments.
// A trailing locale without a value is ignored.
func NewLocalizedString(pairs ...string) LocalizedString {
	var l LocalizedString
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Set(pairs[i], pairs[i+1])
	}

	return l
}

// Set adds or replaces the value for locale, keeping its original position.
func (l *LocalizedString) Set(locale, value string) {
	for i := range l.entries {
		if l.entries[i].Locale == locale {
			l.entries[i].Value = value

			return
		}
	}

	l.entries = append(l.entries, LocalizedEntry{Locale: locale, Value: value})
}

// Get returns the value for locale.
func (l LocalizedString) Get(locale string) (string, bool) {
	for _, entry := range l.entries {
		if entry.Locale == locale {
			return entry.Value, true
		}
	}

	return "", false
}

// First returns the value of the first locale in document order.
func (l LocalizedString) First() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}

	return l.entries[0].Value, true
}

// Len returns the number of locales.
func (l LocalizedString) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the locale/value pairs in document order.
func (l LocalizedString) Entries() []LocalizedEntry {
	out := make([]LocalizedEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Resolve tries each locale in turn, then the first available value, then def.
// A locale that is present with an empty value still wins.
func (l LocalizedString) Resolve(def string, locales ...string) string {
	candidates := make([]*string, 0, len(locales)+1)

	for _, locale := range locales {
		if value, ok := l.Get(locale); ok {
			candidates = append(candidates, &value)
		}
	}

	if value, ok := l.First(); ok {
		candidates = append(candidates, &value)
	}

	return Coalesce(def, candidates...)
}

// Display resolves l with PreferredLocales.
func (l LocalizedString) Display(def string) string {
	return l.Resolve(def, PreferredLocales...)
}

// UnmarshalJSON decodes a JSON object while preserving key order. Null
// values are skipped; a null document yields an empty value.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	l.entries = nil

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding localized string: %w", err)
	}

	if tok == nil {
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotAnObject
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding localized string key: %w", err)
		}

		locale, _ := keyTok.(string)

		var value *string

		err = dec.Decode(&value)
		if err != nil {
			return fmt.Errorf("decoding localized string value for %q: %w", locale, err)
		}

		if value != nil {
			l.Set(locale, *value)
		}
	}

	_, err = dec.Token()
	if err != nil {
		return fmt.Errorf("decoding localized string: %w", err)
	}

	return nil
}

// MarshalJSON encodes l as a JSON object in its stored order.
func (l LocalizedString) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range l.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.Locale)
		if err != nil {
			return nil, fmt.Errorf("encoding locale: %w", err)
		}

		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding localized value: %w", err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Coalesce returns the first non-nil candidate, or def when none is set.
func Coalesce[T any](def T, candidates ...*T) T {
	for _, candidate := range candidates {
		if candidate != nil {
			return *candidate
		}
	}

	return def
}
