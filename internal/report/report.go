package report

import (
	"time"

	"langlens/internal/lang"
)

// FileReport is the per-file outcome of a scan.
type FileReport struct {
	Path        string              `json:"path"`
	Language    string              `json:"language"`
	Analysis    lang.Analysis       `json:"analysis"`
	Functions   []lang.FunctionInfo `json:"functions,omitempty"`
	Diagnostics []lang.Diagnostic   `json:"diagnostics,omitempty"`
}

// Run aggregates one scan run.
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Files     []FileReport  `json:"files"`
}

func (r Run) CountInvalid() (syntax, imports, structure, diagnostics int) {
	for _, f := range r.Files {
		if !f.Analysis.SyntaxValid {
			syntax++
		}
		if !f.Analysis.ImportsValid {
			imports++
		}
		if !f.Analysis.StructureValid {
			structure++
		}
		diagnostics += len(f.Diagnostics)
	}
	return
}

// LanguageTotals counts files per language id.
func (r Run) LanguageTotals() map[string]int {
	totals := make(map[string]int)
	for _, f := range r.Files {
		totals[f.Language]++
	}
	return totals
}
