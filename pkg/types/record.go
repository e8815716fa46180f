package types

import "strings"

// Record is one element of the repository API response. The API does not
// promise a schema, so records stay as decoded JSON objects.
type Record map[string]any

// SIPUUID returns the record's sip_uuid when it is a non-blank string.
func (r Record) SIPUUID() (string, bool) {
	s, ok := r["sip_uuid"].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// MODS returns the raw mods field, which the API encodes as a JSON string.
// The value is returned as-is so callers can tolerate wrong types.
func (r Record) MODS() any {
	return r["mods"]
}
