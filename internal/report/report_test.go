// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/handle-lookup/internal/index"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

const prefix = "http://hdl.handle.net/10176/"

func sampleIndex() *index.Index {
	return index.Build([]types.Record{
		{"sip_uuid": "X", "mods": `{"identifiers":[{"identifier":"B002.01.0097.0022"}],"title":"Foo"}`},
		{"sip_uuid": "", "mods": `{"identifiers":[{"identifier":"B002.01.0097.0016"}]}`},
		{"mods": `{"identifiers":[{"identifier":"B002.01.0097.0016"}],"titleInfo":{"title":"Bar"}}`},
	})
}

func cfgFor(callNumbers ...string) types.LookupConfig {
	return types.LookupConfig{
		Endpoint:     "http://localhost:8000/repo/api/v1/records",
		SIPUUID:      "a5efb5d1-0484-429c-95a5-15c12ff40ca0",
		HandlePrefix: prefix,
		CallNumbers:  callNumbers,
	}
}

func TestResults_FoundRecord(t *testing.T) {
	out := Results(cfgFor("B002.01.0097.0022"), sampleIndex())

	require.Len(t, out.Results, 1)
	res := out.Results[0]
	assert.True(t, res.Found)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, Match{SIPUUID: "X", Handle: prefix + "X", Title: "Foo"}, res.Matches[0])
	assert.Equal(t, 1, out.Found)
	assert.Equal(t, 1, out.Requested)
}

func TestResults_NotFoundContributesZero(t *testing.T) {
	out := Results(cfgFor("NOPE", "B002.01.0097.0022"), sampleIndex())

	require.Len(t, out.Results, 2)
	assert.Equal(t, "NOPE", out.Results[0].CallNumber)
	assert.False(t, out.Results[0].Found)
	assert.Empty(t, out.Results[0].Matches)
	assert.Equal(t, 1, out.Found)
	assert.Equal(t, 2, out.Requested)
}

func TestResults_KeepsRequestedOrder(t *testing.T) {
	out := Results(cfgFor("B002.01.0097.0016", "B002.01.0097.0022", "B002.01.0097.0016"), sampleIndex())

	var got []string
	for _, r := range out.Results {
		got = append(got, r.CallNumber)
	}
	assert.Equal(t, []string{"B002.01.0097.0016", "B002.01.0097.0022", "B002.01.0097.0016"}, got)
	assert.Equal(t, 5, out.Found)
}

func TestPrinter_FoundBlock(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Report(Results(cfgFor("B002.01.0097.0022"), sampleIndex()))

	want := "--- Lookup for call_number: B002.01.0097.0022 ---\n" +
		"Matches found : 1\n" +
		"  [1] sip_uuid: X\n" +
		"      handle:  http://hdl.handle.net/10176/X\n" +
		"      title :  Foo\n" +
		"\n" +
		"Summary       : Printed 1 matching record(s) across 1 call_number(s).\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_MissingSIPUUID(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Report(Results(cfgFor("B002.01.0097.0016"), sampleIndex()))

	got := buf.String()
	assert.Contains(t, got, "Matches found : 2\n")
	assert.Contains(t, got, "  [1] sip_uuid: (missing)\n      handle:  (cannot build, missing sip_uuid)\n      title :  (no title found)\n")
	assert.Contains(t, got, "  [2] sip_uuid: (missing)\n      handle:  (cannot build, missing sip_uuid)\n      title :  Bar\n")
	assert.Contains(t, got, "Printed 2 matching record(s) across 1 call_number(s).")
}

func TestPrinter_NothingFound(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Report(Results(cfgFor("A", "B"), sampleIndex()))

	want := "--- Lookup for call_number: A ---\n" +
		"Result        : Not found in API response.\n\n" +
		"--- Lookup for call_number: B ---\n" +
		"Result        : Not found in API response.\n\n" +
		"Summary       : No matching call_numbers found.\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Header(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	cfg := cfgFor("A", "B")
	cfg.APIKey = "do-not-print"
	p.Header(cfg)
	p.Fetched(3, 0)
	p.Indexed(sampleIndex())

	got := buf.String()
	assert.Contains(t, got, "API key set   : yes\n")
	assert.NotContains(t, got, "do-not-print")
	assert.Contains(t, got, "Call numbers  : A, B\n")
	assert.Contains(t, got, "API returned  : 3 record(s)")
	assert.Contains(t, got, "Indexed       : 2 unique identifier(s)")
	assert.NotContains(t, got, "Dropped")
	assert.NotContains(t, got, "Skipped")
}

func TestPrinter_FetchedReportsDroppedElements(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Fetched(5, 2)

	assert.Equal(t, "API returned  : 5 record(s) in the collection scope.\n"+
		"Dropped       : 2 non-object element(s).\n", buf.String())
}

func TestPrinter_IndexedReportsSkippedRecords(t *testing.T) {
	idx := index.Build([]types.Record{
		{"sip_uuid": "X", "mods": `{"identifiers":[{"identifier":"A"}]}`},
		{"sip_uuid": "Y", "mods": "not json"},
		{"sip_uuid": "Z"},
	})

	var buf bytes.Buffer
	NewPrinter(&buf).Indexed(idx)

	assert.Equal(t, "Indexed       : 1 unique identifier(s) from API response.\n"+
		"Skipped       : 2 of 3 record(s) had no call number.\n\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, types.FormatJSON, Results(cfgFor("B002.01.0097.0022", "NOPE"), sampleIndex())))

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.Found)
	assert.Equal(t, 2, out.Requested)
	assert.Equal(t, prefix+"X", out.Results[0].Matches[0].Handle)
	assert.NotNil(t, out.Results[1].Matches)
	assert.Contains(t, buf.String(), `"matches": []`)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, types.FormatYAML, Results(cfgFor("B002.01.0097.0022"), sampleIndex())))

	var out Output
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Foo", out.Results[0].Matches[0].Title)
	assert.True(t, strings.HasPrefix(buf.String(), "results:\n"))
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, types.FormatText, Results(cfgFor("NOPE"), sampleIndex())))
	assert.Contains(t, buf.String(), "No matching call_numbers found.")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, types.OutputFormat("xml"), Output{})
	assert.Error(t, err)
}
