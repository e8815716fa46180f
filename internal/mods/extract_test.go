// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   string
		wantOK bool
	}{
		{"first identifier", `{"identifiers":[{"identifier":"B002.01.0097.0022"},{"identifier":"other"}]}`, "B002.01.0097.0022", true},
		{"not a string", map[string]any{"identifiers": []any{}}, "", false},
		{"nil field", nil, "", false},
		{"invalid json", `{"identifiers":[`, "", false},
		{"no identifiers key", `{"title":"Foo"}`, "", false},
		{"identifiers not an array", `{"identifiers":{"identifier":"X"}}`, "", false},
		{"empty identifiers", `{"identifiers":[]}`, "", false},
		{"first element not an object", `{"identifiers":["X"]}`, "", false},
		{"identifier missing", `{"identifiers":[{"type":"local"}]}`, "", false},
		{"identifier empty", `{"identifiers":[{"identifier":""}]}`, "", false},
		{"identifier not a string", `{"identifiers":[{"identifier":42}]}`, "", false},
		{"document is an array", `[{"identifiers":[{"identifier":"X"}]}]`, "", false},
		{"document is null", `null`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractIdentifier(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   string
		wantOK bool
	}{
		{"titleInfo preferred over title", `{"titleInfo":{"title":"Info"},"title":"Bare","mods":{"titleInfo":{"title":"Nested"}}}`, "Info", true},
		{"bare title preferred over nested mods", `{"title":"Bare","mods":{"titleInfo":{"title":"Nested"}}}`, "Bare", true},
		{"nested mods title", `{"mods":{"titleInfo":{"title":"Nested"}}}`, "Nested", true},
		{"trims whitespace", `{"title":"  Letters home \n"}`, "Letters home", true},
		{"blank titleInfo falls through", `{"titleInfo":{"title":"   "},"title":"Bare"}`, "Bare", true},
		{"non-string titleInfo title falls through", `{"titleInfo":{"title":7},"title":"Bare"}`, "Bare", true},
		{"titleInfo is an array", `{"titleInfo":[{"title":"X"}],"title":"Bare"}`, "Bare", true},
		{"null titleInfo", `{"titleInfo":null,"mods":{"titleInfo":{"title":"Nested"}}}`, "Nested", true},
		{"all blank", `{"titleInfo":{"title":""},"title":" ","mods":{"titleInfo":{"title":"\t"}}}`, "", false},
		{"no candidates", `{"identifiers":[{"identifier":"X"}]}`, "", false},
		{"invalid json", `not json`, "", false},
		{"not a string", 12.5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTitle(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
