package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderJSON is the machine-readable form of a run.
func RenderJSON(run Run) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	return string(data) + "\n", nil
}

// RenderTSV writes one row per file for spreadsheet import.
func RenderTSV(run Run) string {
	var b strings.Builder
	b.WriteString("path\tlanguage\tsyntax_valid\timports_valid\tstructure_valid\tfunctions\tdiagnostics\n")
	for _, f := range run.Files {
		fmt.Fprintf(&b, "%s\t%s\t%t\t%t\t%t\t%d\t%d\n",
			f.Path, f.Language,
			f.Analysis.SyntaxValid, f.Analysis.ImportsValid, f.Analysis.StructureValid,
			len(f.Functions), len(f.Diagnostics))
	}
	return b.String()
}
