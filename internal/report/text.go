// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/handle-lookup/internal/index"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

const (
	missingSIPUUID = "(missing)"
	missingHandle  = "(cannot build, missing sip_uuid)"
	missingTitle   = "(no title found)"
)

// Printer writes the human-readable report.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints the run parameters. The API key itself is never printed.
func (p *Printer) Header(cfg types.LookupConfig) {
	apiKey := "no"
	if cfg.HasAPIKey() {
		apiKey = "yes"
	}
	fmt.Fprintln(p.w, "=== Repository API lookup ===")
	fmt.Fprintf(p.w, "Endpoint      : %s\n", cfg.Endpoint)
	fmt.Fprintf(p.w, "SIP UUID      : %s\n", cfg.SIPUUID)
	fmt.Fprintf(p.w, "API key set   : %s\n", apiKey)
	fmt.Fprintf(p.w, "Handle prefix : %s\n", cfg.HandlePrefix)
	fmt.Fprintf(p.w, "Call numbers  : %s\n", strings.Join(cfg.CallNumbers, ", "))
	fmt.Fprintln(p.w, "Fetching collection records from the API...")
}

// Fetched prints the length of the array the API returned and how many of
// its elements were dropped for not being objects.
func (p *Printer) Fetched(elements, dropped int) {
	fmt.Fprintf(p.w, "API returned  : %d record(s) in the collection scope.\n", elements)
	if dropped > 0 {
		fmt.Fprintf(p.w, "Dropped       : %d non-object element(s).\n", dropped)
	}
}

// Indexed prints how many distinct call numbers were indexed and how many
// records had no call number.
func (p *Printer) Indexed(idx *index.Index) {
	fmt.Fprintf(p.w, "Indexed       : %d unique identifier(s) from API response.\n", idx.Len())
	if idx.Skipped() > 0 {
		fmt.Fprintf(p.w, "Skipped       : %d of %d record(s) had no call number.\n", idx.Skipped(), idx.Records()+idx.Skipped())
	}
	fmt.Fprintln(p.w)
}

// Result prints the block for one call number.
func (p *Printer) Result(res Result) {
	fmt.Fprintf(p.w, "--- Lookup for call_number: %s ---\n", res.CallNumber)
	if !res.Found {
		fmt.Fprint(p.w, "Result        : Not found in API response.\n\n")
		return
	}

	fmt.Fprintf(p.w, "Matches found : %d\n", len(res.Matches))
	for i, m := range res.Matches {
		sip, handle := m.SIPUUID, m.Handle
		if sip == "" {
			sip, handle = missingSIPUUID, missingHandle
		}
		fmt.Fprintf(p.w, "  [%d] sip_uuid: %s\n", i+1, sip)
		fmt.Fprintf(p.w, "      handle:  %s\n", handle)
		fmt.Fprintf(p.w, "      title :  %s\n", orDefault(m.Title, missingTitle))
	}
	fmt.Fprintln(p.w)
}

// Summary prints the closing line.
func (p *Printer) Summary(found, requested int) {
	if found == 0 {
		fmt.Fprintln(p.w, "Summary       : No matching call_numbers found.")
		return
	}
	fmt.Fprintf(p.w, "Summary       : Printed %d matching record(s) across %d call_number(s).\n", found, requested)
}

// Report prints every result followed by the summary.
func (p *Printer) Report(out Output) {
	for _, res := range out.Results {
		p.Result(res)
	}
	p.Summary(out.Found, out.Requested)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
