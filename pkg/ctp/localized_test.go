package ctp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLocalized(t *testing.T, doc string) LocalizedString {
	t.Helper()

	var l LocalizedString

	require.NoError(t, json.Unmarshal([]byte(doc), &l))

	return l
}

func TestLocalizedString_Display(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{"en-GB wins", `{"de":"Bett","en":"Bed","en-GB":"Bed (UK)"}`, "Bed (UK)"},
		{"en fallback", `{"de":"Bett","en":"Bed"}`, "Bed"},
		{"first in document order", `{"fr":"Lit","de":"Bett"}`, "Lit"},
		{"first in document order reversed", `{"de":"Bett","fr":"Lit"}`, "Bett"},
		{"empty object", `{}`, PlaceholderNoName},
		{"null", `null`, PlaceholderNoName},
		{"present empty value wins", `{"en-GB":"","en":"Bed"}`, ""},
		{"null values skipped", `{"en-GB":null,"en":"Bed"}`, "Bed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := decodeLocalized(t, tt.doc)
			assert.Equal(t, tt.expected, l.Display(PlaceholderNoName))
		})
	}
}

func TestLocalizedString_Resolve(t *testing.T) {
	t.Parallel()

	l := NewLocalizedString("de", "Bett", "nl", "Bed NL")

	assert.Equal(t, "Bed NL", l.Resolve("none", "nl", "de"))
	assert.Equal(t, "Bett", l.Resolve("none", "fr"))
	assert.Equal(t, "none", LocalizedString{}.Resolve("none", "fr"))
}

func TestLocalizedString_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()

		l := decodeLocalized(t, `{"z":"1","a":"2","m":"3"}`)
		assert.Equal(t, []LocalizedEntry{{"z", "1"}, {"a", "2"}, {"m", "3"}}, l.Entries())
		assert.Equal(t, 3, l.Len())
	})

	t.Run("rejects non objects", func(t *testing.T) {
		t.Parallel()

		var l LocalizedString

		err := json.Unmarshal([]byte(`["en"]`), &l)
		require.Error(t, err)
		assert.ErrorIs(t, err, errNotAnObject)
	})

	t.Run("inside a struct", func(t *testing.T) {
		t.Parallel()

		var c Category

		require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","name":{"en":"Beds"},"slug":{"en":"beds"}}`), &c))
		assert.Equal(t, "Beds", c.Name.Display(""))
		assert.Equal(t, "beds", c.Slug.Display(""))
	})
}

func TestLocalizedString_MarshalJSON(t *testing.T) {
	t.Parallel()

	l := NewLocalizedString("en", "Bed", "de", "Bett")
	l.Set("en", "Bed!")

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"Bed!","de":"Bett"}`, string(data))
	assert.Equal(t, `{"en":"Bed!","de":"Bett"}`, string(data))
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	first, second := "a", "b"

	assert.Equal(t, "a", Coalesce("def", nil, &first, &second))
	assert.Equal(t, "def", Coalesce[string]("def"))
	assert.Equal(t, "def", Coalesce("def", nil, nil))

	zero := 0
	assert.Equal(t, 0, Coalesce(7, &zero))
}
