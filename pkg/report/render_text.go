package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// Number of findings listed at detailed level.
const detailedListLimit = 10

var (
	titleColor   = color.New(color.FgGreen, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)

	severityColors = map[types.Severity]*color.Color{
		types.SeverityError:   color.New(color.FgRed, color.Bold),
		types.SeverityWarning: color.New(color.FgYellow),
		types.SeverityInfo:    color.New(color.FgBlue),
	}
)

// textWriter keeps the first write error so the renderer can be written as a sequence of prints.
type textWriter struct {
	w     io.Writer
	color bool
	err   error
}

func (x *textWriter) printf(c *color.Color, format string, args ...any) {
	if x.err != nil {
		return
	}
	if c == nil || !x.color {
		_, x.err = fmt.Fprintf(x.w, format, args...)
		return
	}
	_, x.err = c.Fprintf(x.w, format, args...)
}

func renderText(w io.Writer, report *model.AnalysisReport, cfg *renderConfig) error {
	tw := &textWriter{w: w, color: cfg.color}

	tw.printf(titleColor, "Eco Code Analysis Report\n")
	tw.printf(nil, "%s\n", strings.Repeat("=", 24))
	tw.printf(nil, "Repository: %s\n", report.Repository.String())
	if report.Repository.Commit != "" {
		tw.printf(nil, "Commit:     %s\n", report.Repository.Commit)
	}
	if !report.GeneratedAt.IsZero() {
		tw.printf(nil, "Generated:  %s\n", report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	tw.printf(nil, "Detail:     %s\n", report.Detail)
	tw.printf(nil, "Catalog:    %s\n\n", report.CatalogVersion)

	tw.printf(headingColor, "Summary\n")
	tw.printf(nil, "  Files analyzed:    %d\n", report.Metrics.FilesAnalyzed)
	tw.printf(nil, "  Lines of code:     %d\n", report.Metrics.TotalLines)
	tw.printf(nil, "  Findings:          %d", report.Summary.TotalFindings)
	if report.Summary.TotalFindings > 0 {
		parts := make([]string, 0, len(types.Severities))
		for _, s := range types.Severities {
			parts = append(parts, fmt.Sprintf("%s %d", s, report.Summary.BySeverity[s]))
		}
		tw.printf(nil, " (%s)", strings.Join(parts, ", "))
	}
	tw.printf(nil, "\n")
	tw.printf(nil, "  Complexity score:  %.2f / %.0f\n", report.Metrics.ComplexityScore, MaxComplexityScore)
	tw.printf(nil, "  Estimated CO2e:    %.4f kg\n\n", report.Emissions.TotalKgCO2e)

	switch {
	case report.Detail.AtLeast(types.DetailComprehensive):
		writeFindings(tw, report.Findings)
		writeLanguages(tw, report.Metrics)
		writeBreakdown(tw, report.Emissions)
	case report.Detail.AtLeast(types.DetailDetailed):
		shown := report.Findings
		if len(shown) > detailedListLimit {
			shown = shown[:detailedListLimit]
		}
		writeFindings(tw, shown)
		if rest := len(report.Findings) - len(shown); rest > 0 {
			tw.printf(dimColor, "  ... and %d more\n\n", rest)
		}
	default:
		writeTopFiles(tw, report.Summary)
	}

	tw.printf(headingColor, "Environmental Impact\n")
	tw.printf(nil, "  %.4f kgCO2e is about %.1f smartphone charges or %.2f km driven by car.\n\n",
		report.Emissions.TotalKgCO2e,
		smartphoneCharges(report.Emissions.TotalKgCO2e),
		kmDriven(report.Emissions.TotalKgCO2e))

	tw.printf(headingColor, "Recommendations\n")
	recs := Recommendations(report)
	if len(recs) == 0 {
		tw.printf(nil, "  No issues found at this detail level.\n")
	}
	for i, r := range recs {
		tw.printf(nil, "  %d. %s (%s, %d occurrence(s))\n", i+1, r.Suggestion, r.RuleID, r.Count)
	}

	return tw.err
}

// writeFindings lays the table out without colors and colors the severity cell afterwards,
// so escape sequences do not count toward column widths.
func writeFindings(tw *textWriter, findings []model.Finding) {
	tw.printf(headingColor, "Findings\n")
	if len(findings) == 0 {
		tw.printf(nil, "  No findings.\n\n")
		return
	}

	var buf bytes.Buffer
	tab := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tab, "  SEVERITY\tRULE\tLOCATION\tMESSAGE\n")
	for _, f := range findings {
		msg := strings.ReplaceAll(f.Message, "\n", " ")
		_, _ = fmt.Fprintf(tab, "  %s\t%s\t%s:%d\t%s\n", f.Severity, f.RuleID, f.Path, f.Line, msg)
	}
	if err := tab.Flush(); err != nil {
		if tw.err == nil {
			tw.err = err
		}
		return
	}

	rows := strings.SplitAfter(buf.String(), "\n")
	tw.printf(nil, "%s", rows[0])
	for i, f := range findings {
		row := rows[i+1]
		if c, ok := severityColors[f.Severity]; ok && tw.color {
			sev := string(f.Severity)
			row = "  " + c.Sprint(sev) + strings.TrimPrefix(row, "  "+sev)
		}
		tw.printf(nil, "%s", row)
	}
	tw.printf(nil, "\n")
}

func writeTopFiles(tw *textWriter, summary model.Summary) {
	files := sortedCounts(summary.ByFile)
	if len(files) == 0 {
		return
	}
	if len(files) > 5 {
		files = files[:5]
	}
	tw.printf(headingColor, "Top Files\n")
	for _, f := range files {
		tw.printf(nil, "  %4d  %s\n", f.Count, f.Name)
	}
	tw.printf(nil, "\n")
}

func writeLanguages(tw *textWriter, metrics model.Metrics) {
	langs := sortedCounts(metrics.Languages)
	if len(langs) == 0 {
		return
	}
	tw.printf(headingColor, "Languages\n")
	for _, l := range langs {
		tw.printf(nil, "  %-12s %d file(s)\n", l.Name, l.Count)
	}
	tw.printf(nil, "\n")
}

func writeBreakdown(tw *textWriter, e model.Emissions) {
	tw.printf(headingColor, "Emissions Breakdown\n")
	tw.printf(nil, "  base: %d lines x %.4f kg x %.2f\n", e.LinesOfCode, e.PerLineKgCO2e, e.IssueMultiplier)
	for _, c := range sortedBreakdown(e) {
		tw.printf(nil, "  %-10s %.4f kg\n", c.Category, c.KgCO2e)
	}
	tw.printf(nil, "\n")
}
