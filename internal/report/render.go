// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/handle-lookup/pkg/types"
)

// Render writes out in the given format. Text output has no run header;
// callers wanting the full text report use Printer directly.
func Render(w io.Writer, format types.OutputFormat, out Output) error {
	switch format {
	case types.FormatText, "":
		NewPrinter(w).Report(out)
		return nil
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		return nil
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
