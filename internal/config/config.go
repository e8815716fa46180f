// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the lookup configuration from command-line flags,
// environment variables, an optional config file, and the secrets directory.
//
// Each option takes the first value found in this order: a flag set on the
// command line, its environment variable, its config file key, and finally
// the flag default. An environment variable that is set but empty still
// wins over the config file.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/handle-lookup/pkg/types"
)

// Flag names.
const (
	FlagEndpoint     = "repo-endpoint"
	FlagAPIKey       = "api-key"
	FlagSIPUUID      = "sip-uuid"
	FlagHandlePrefix = "handle-prefix"
	FlagTimeout      = "timeout"
	FlagRecordType   = "record-type"
	FlagFormat       = "format"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvEndpoint     = "REPO_ENDPOINT"
	EnvAPIKey       = "REPO_API_KEY"
	EnvSIPUUID      = "REPO_SIP_UUID"
	EnvHandlePrefix = "REPO_HANDLE_URL"
)

// SecretAPIKey is the file name under the secrets directory holding the API key.
const SecretAPIKey = "repo-api-key"

// Defaults.
const (
	DefaultSIPUUID        = "a5efb5d1-0484-429c-95a5-15c12ff40ca0"
	DefaultHandlePrefix   = "http://hdl.handle.net/10176/"
	DefaultTimeoutSeconds = 15.0
	DefaultRecordType     = "collection"
	DefaultUserAgent      = "handle-lookup/0.1"
)

// maxTimeoutSeconds is the largest timeout that fits in a time.Duration.
const maxTimeoutSeconds = float64(math.MaxInt64) / float64(time.Second)

// LookupEnv reports the value of an environment variable and whether it is
// set. os.LookupEnv satisfies it.
type LookupEnv func(key string) (string, bool)

// Sources are the inputs Resolve merges.
type Sources struct {
	// Flags must have been populated by RegisterFlags and parsed.
	Flags *pflag.FlagSet
	// File is the loaded config file, or nil when none was found.
	File *viper.Viper
	// Env looks up environment variables. Nil means no environment.
	Env LookupEnv
	// Secrets maps secret names to values, as returned by secrets.Load.
	Secrets map[string]string
}

// RegisterFlags defines the lookup flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagEndpoint, "", "records endpoint URL (default from "+EnvEndpoint+")")
	fs.String(FlagAPIKey, "", "repository API key (default from "+EnvAPIKey+")")
	fs.String(FlagSIPUUID, DefaultSIPUUID, "collection sip_uuid (default from "+EnvSIPUUID+")")
	fs.String(FlagHandlePrefix, DefaultHandlePrefix, "prefix used to build handle URLs from sip_uuid (default from "+EnvHandlePrefix+")")
	fs.Float64(FlagTimeout, DefaultTimeoutSeconds, "HTTP timeout in seconds")
	fs.String(FlagRecordType, DefaultRecordType, "record type sent as the type query parameter")
	fs.String(FlagFormat, string(types.FormatText), "output format: text, json, or yaml")
}

// Resolve builds the configuration for call numbers args.
func Resolve(args []string, src Sources) (types.LookupConfig, error) {
	if len(args) == 0 {
		return types.LookupConfig{}, fmt.Errorf("provide one or more call numbers")
	}
	for i, cn := range args {
		if cn == "" {
			return types.LookupConfig{}, fmt.Errorf("call number %d is empty", i+1)
		}
	}

	r := resolver{src: src}
	cfg := types.LookupConfig{
		HTTPConfig: types.HTTPConfig{
			UserAgent: DefaultUserAgent,
		},
		Endpoint:     r.str(FlagEndpoint, EnvEndpoint, "endpoint"),
		APIKey:       r.str(FlagAPIKey, EnvAPIKey, "api_key"),
		SIPUUID:      r.str(FlagSIPUUID, EnvSIPUUID, "sip_uuid"),
		HandlePrefix: r.str(FlagHandlePrefix, EnvHandlePrefix, "handle_prefix"),
		RecordType:   r.str(FlagRecordType, "", "record_type"),
		Format:       types.OutputFormat(r.str(FlagFormat, "", "format")),
		CallNumbers:  append([]string(nil), args...),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = src.Secrets[SecretAPIKey]
	}
	if cfg.RecordType == "" {
		cfg.RecordType = DefaultRecordType
	}

	seconds := r.float(FlagTimeout, "timeout")
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return types.LookupConfig{}, fmt.Errorf("timeout must be a positive number of seconds, got %v", seconds)
	}
	if seconds >= maxTimeoutSeconds {
		return types.LookupConfig{}, fmt.Errorf("timeout of %v seconds is too large (must be below %.0f)", seconds, maxTimeoutSeconds)
	}
	cfg.Timeout = time.Duration(seconds * float64(time.Second))

	if !cfg.Format.Valid() {
		return types.LookupConfig{}, fmt.Errorf("unknown output format %q (want text, json, or yaml)", cfg.Format)
	}
	return cfg, nil
}

type resolver struct {
	src Sources
}

func (r resolver) str(flag, env, key string) string {
	if r.src.Flags.Changed(flag) {
		v, _ := r.src.Flags.GetString(flag)
		return v
	}
	if env != "" && r.src.Env != nil {
		if v, ok := r.src.Env(env); ok {
			return v
		}
	}
	if r.src.File != nil && r.src.File.IsSet(key) {
		return r.src.File.GetString(key)
	}
	v, _ := r.src.Flags.GetString(flag)
	return v
}

func (r resolver) float(flag, key string) float64 {
	if !r.src.Flags.Changed(flag) && r.src.File != nil && r.src.File.IsSet(key) {
		return r.src.File.GetFloat64(key)
	}
	v, _ := r.src.Flags.GetFloat64(flag)
	return v
}
