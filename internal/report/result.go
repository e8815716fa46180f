// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns index lookups into the per-call-number report,
// written as text for people or as JSON/YAML for scripts.
package report

import (
	"github.com/pdiddy/handle-lookup/internal/index"
	"github.com/pdiddy/handle-lookup/internal/mods"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

// Match describes one record found for a call number. Empty SIPUUID,
// Handle, or Title means the value was missing from the record.
type Match struct {
	SIPUUID string `json:"sip_uuid" yaml:"sip_uuid"`
	Handle  string `json:"handle" yaml:"handle"`
	Title   string `json:"title" yaml:"title"`
}

// Result holds the matches for one requested call number.
type Result struct {
	CallNumber string  `json:"call_number" yaml:"call_number"`
	Found      bool    `json:"found" yaml:"found"`
	Matches    []Match `json:"matches" yaml:"matches"`
}

// Output is the full structured report.
type Output struct {
	Results   []Result `json:"results" yaml:"results"`
	Found     int      `json:"found" yaml:"found"`
	Requested int      `json:"requested" yaml:"requested"`
}

// NewMatch builds the report entry for rec. The handle is left empty when
// the record has no usable sip_uuid.
func NewMatch(rec types.Record, handlePrefix string) Match {
	var m Match
	if sip, ok := rec.SIPUUID(); ok {
		m.SIPUUID = sip
		m.Handle = handlePrefix + sip
	}
	if title, ok := mods.ExtractTitle(rec.MODS()); ok {
		m.Title = title
	}
	return m
}

// Lookup resolves one call number against idx.
func Lookup(idx *index.Index, callNumber, handlePrefix string) Result {
	res := Result{CallNumber: callNumber, Matches: []Match{}}
	for _, rec := range idx.Lookup(callNumber) {
		res.Matches = append(res.Matches, NewMatch(rec, handlePrefix))
	}
	res.Found = len(res.Matches) > 0
	return res
}

// Results resolves every configured call number, in the order given.
func Results(cfg types.LookupConfig, idx *index.Index) Output {
	out := Output{Results: make([]Result, 0, len(cfg.CallNumbers)), Requested: len(cfg.CallNumbers)}
	for _, cn := range cfg.CallNumbers {
		res := Lookup(idx, cn, cfg.HandlePrefix)
		out.Found += len(res.Matches)
		out.Results = append(out.Results, res)
	}
	return out
}
