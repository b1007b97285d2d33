package export

import (
	"fmt"
	"strings"

	"dqlens/domain/quality"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders a report as a human-readable markdown document
func Markdown(report *quality.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Quality Report: %s\n\n", report.DatasetName)
	fmt.Fprintf(&b, "**Global score: %.1f/100** — %d rows, %d columns\n\n", report.GlobalScore, report.Rows, report.Columns)

	b.WriteString("## Category Scores\n\n")
	b.WriteString("| Category | Score |\n|---|---|\n")
	for _, cat := range quality.Categories() {
		fmt.Fprintf(&b, "| %s | %.1f |\n", cat, report.CategoryScores[cat])
	}
	b.WriteString("\n")

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Expected | Actual | Conformity | Nulls | Unique |\n|---|---|---|---|---|---|\n")
	for _, p := range report.ColumnProfiles {
		fmt.Fprintf(&b, "| %s | %s | %s | %.1f%% | %d | %d |\n",
			p.Name, p.ExpectedType, p.ActualType, p.ConformityRate, p.NullCount, p.UniqueCount)
	}
	b.WriteString("\n")

	findings := collectFindings(report.Evaluation, report.ColumnProfiles)
	if len(findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, r := range findings {
			target := "dataset"
			if r.Column != "" {
				target = r.Column
			}
			fmt.Fprintf(&b, "- **%s** [%s] %s: %s\n", strings.ToUpper(string(r.Severity)), r.RuleID, target, r.Message)
		}
		b.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "1. **[%s]** %s — %s (%s)\n", rec.Priority, rec.Message, rec.Action, rec.Category)
		}
		b.WriteString("\n")
	}

	s := report.Evaluation.Summary
	fmt.Fprintf(&b, "---\n\n%d rules executed: %d passed, %d warnings, %d critical\n",
		s.TotalRulesExecuted, s.RulesPassed, s.RulesWarning, s.RulesCritical)

	return b.String()
}

// HTML renders the markdown report as an HTML fragment
func HTML(report *quality.Report) []byte {
	md := []byte(Markdown(report))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func collectFindings(eval quality.Evaluation, profiles []quality.ColumnProfile) []quality.RuleResult {
	order := make([]string, len(profiles))
	for i, p := range profiles {
		order[i] = p.Name
	}
	var out []quality.RuleResult
	for _, r := range eval.All(order) {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
