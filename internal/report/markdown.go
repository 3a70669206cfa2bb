package report

import (
	"fmt"
	"sort"
	"strings"

	"langlens/internal/history"
)

// RenderMarkdown writes the human-facing scan report. Trend rows are
// optional; pass nil when no history store is configured.
func RenderMarkdown(run Run, trends []history.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Language Analysis Report\n\n")
	fmt.Fprintf(&b, "Run `%s` — %s, %d files in %s\n\n",
		run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), len(run.Files), run.Duration.Round(1e6))

	syntax, imports, structure, diagnostics := run.CountInvalid()
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Syntax failures: %d\n", syntax)
	fmt.Fprintf(&b, "- Import convention failures: %d\n", imports)
	fmt.Fprintf(&b, "- Structure failures: %d\n", structure)
	fmt.Fprintf(&b, "- Diagnostics: %d\n\n", diagnostics)

	b.WriteString("## Files by language\n\n")
	totals := run.LanguageTotals()
	languages := make([]string, 0, len(totals))
	for language := range totals {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	for _, language := range languages {
		fmt.Fprintf(&b, "- %s: %d\n", language, totals[language])
	}
	b.WriteString("\n")

	writeInvalidFiles(&b, run)
	writeComplexityHotspots(&b, run)
	writeTrends(&b, trends)

	return b.String()
}

func writeInvalidFiles(b *strings.Builder, run Run) {
	var rows []string
	for _, f := range run.Files {
		var problems []string
		if !f.Analysis.SyntaxValid {
			problems = append(problems, "syntax")
		}
		if !f.Analysis.ImportsValid {
			problems = append(problems, "imports")
		}
		if !f.Analysis.StructureValid {
			problems = append(problems, "structure")
		}
		if len(problems) == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("| %s | %s | %s |", f.Path, f.Language, strings.Join(problems, ", ")))
	}
	if len(rows) == 0 {
		return
	}

	b.WriteString("## Invalid files\n\n")
	b.WriteString("| File | Language | Failing checks |\n")
	b.WriteString("|------|----------|----------------|\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
}

type hotspot struct {
	path string
	fn   string
	cost int
}

func writeComplexityHotspots(b *strings.Builder, run Run) {
	var hotspots []hotspot
	for _, f := range run.Files {
		for _, fn := range f.Functions {
			hotspots = append(hotspots, hotspot{path: f.Path, fn: fn.Name, cost: fn.Complexity})
		}
	}
	sort.Slice(hotspots, func(i, j int) bool { return hotspots[i].cost > hotspots[j].cost })
	if len(hotspots) > 10 {
		hotspots = hotspots[:10]
	}
	if len(hotspots) == 0 {
		return
	}

	b.WriteString("## Complexity hotspots\n\n")
	for _, h := range hotspots {
		fmt.Fprintf(b, "- %s `%s` (complexity %d)\n", h.path, h.fn, h.cost)
	}
	b.WriteString("\n")
}

func writeTrends(b *strings.Builder, trends []history.Snapshot) {
	if len(trends) == 0 {
		return
	}
	b.WriteString("## Recent runs\n\n")
	for _, snap := range trends {
		fmt.Fprintf(b, "- %s: %d files, %d syntax failures, %d diagnostics\n",
			snap.CreatedAt.Format("2006-01-02 15:04"), snap.Files, snap.SyntaxInvalid, snap.Diagnostics)
	}
	b.WriteString("\n")
}
