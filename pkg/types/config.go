package types

import "time"

// HTTPConfig holds HTTP settings for the repository API request.
type HTTPConfig struct {
	// Timeout bounds the whole request, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request
	// (e.g. "handle-lookup/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OutputFormat selects how lookup results are written to stdout.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Valid reports whether f names a supported output format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// LookupConfig is the resolved configuration for one run. It is built once
// at startup and passed by value.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the records endpoint URL of the repository API.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey is sent as the api_key query parameter when non-empty.
	APIKey string `json:"-" yaml:"-"`

	// SIPUUID identifies the collection whose records are fetched.
	SIPUUID string `json:"sip_uuid" yaml:"sip_uuid"`

	// RecordType is sent as the type query parameter (default "collection").
	RecordType string `json:"record_type" yaml:"record_type"`

	// HandlePrefix is prepended to a record's sip_uuid to form its handle URL.
	HandlePrefix string `json:"handle_prefix" yaml:"handle_prefix"`

	// CallNumbers are the identifiers to look up, in the order given.
	CallNumbers []string `json:"call_numbers" yaml:"call_numbers"`

	// Format selects text, JSON, or YAML output.
	Format OutputFormat `json:"format" yaml:"format"`
}

// HasAPIKey reports whether an API key is configured.
func (c LookupConfig) HasAPIKey() bool { return c.APIKey != "" }
