// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mods reads call numbers and titles out of the MODS metadata that
// the repository API embeds in each record as a JSON-encoded string.
//
// MODS documents from the API do not share one schema. Every lookup here is
// best-effort: a missing key, a value of the wrong type, or a string that is
// not JSON yields "not found" and never an error.
package mods

import (
	"encoding/json"
	"strings"
)

// titlePaths lists where a title may live, most preferred first. The order
// reflects the shapes seen in the collection, not a MODS standard.
var titlePaths = [][]string{
	{"titleInfo", "title"},
	{"title"},
	{"mods", "titleInfo", "title"},
}

// Parse decodes raw as a MODS document. raw must be a string holding JSON;
// anything else reports false.
func Parse(raw any) (any, bool) {
	s, ok := raw.(string)
	if !ok {
		return nil, false
	}
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// ExtractIdentifier returns identifiers[0].identifier from the MODS string
// raw, the record's call number.
func ExtractIdentifier(raw any) (string, bool) {
	doc, ok := Parse(raw)
	if !ok {
		return "", false
	}
	first, ok := index(field(doc, "identifiers"))
	if !ok {
		return "", false
	}
	v, _ := field(first, "identifier")
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ExtractTitle returns the first non-blank title found along titlePaths,
// trimmed of surrounding whitespace.
func ExtractTitle(raw any) (string, bool) {
	doc, ok := Parse(raw)
	if !ok {
		return "", false
	}
	for _, path := range titlePaths {
		if t, ok := str(walk(doc, path)); ok {
			return t, true
		}
	}
	return "", false
}

// field returns v[key] when v is a JSON object that has key.
func field(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	return val, ok
}

// index returns the first element of v when v is a non-empty JSON array.
func index(v any, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	arr, isArr := v.([]any)
	if !isArr || len(arr) == 0 {
		return nil, false
	}
	return arr[0], true
}

// walk follows path through nested objects, stopping at the first miss.
func walk(v any, path []string) (any, bool) {
	cur := v
	for _, key := range path {
		next, ok := field(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// str returns v trimmed when it is a string with non-space content.
func str(v any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
