package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/report"
)

func sampleReport(detail types.DetailLevel) *model.AnalysisReport {
	repo, files, findings := sampleInput()
	return report.Aggregate(context.Background(), repo, files, findings, detail,
		report.WithReportID("r-1"), report.WithGeneratedAt(fixedTime))
}

func render(t *testing.T, r *model.AnalysisReport, format types.OutputFormat) string {
	t.Helper()
	var buf bytes.Buffer
	gt.NoError(t, report.Render(&buf, r, format))
	return buf.String()
}

func TestRenderJSON(t *testing.T) {
	r := sampleReport(types.DetailDetailed)
	out := render(t, r, types.OutputJSON)

	var decoded model.AnalysisReport
	gt.NoError(t, json.Unmarshal([]byte(out), &decoded))
	gt.V(t, decoded.ID).Equal(r.ID)
	gt.V(t, decoded.Summary.TotalFindings).Equal(r.Summary.TotalFindings)
	gt.V(t, len(decoded.Findings)).Equal(len(r.Findings))
	gt.V(t, decoded.Summary.BySeverity).Equal(r.Summary.BySeverity)
	gt.V(t, decoded.Emissions.TotalKgCO2e).Equal(r.Emissions.TotalKgCO2e)
	gt.V(t, decoded.Repository).Equal(r.Repository)
	gt.True(t, strings.HasPrefix(out, "{\n  \""))
}

func TestRenderDeterministic(t *testing.T) {
	color.NoColor = true

	for _, format := range types.OutputFormats {
		t.Run(string(format), func(t *testing.T) {
			r := sampleReport(types.DetailComprehensive)
			gt.V(t, render(t, r, format)).Equal(render(t, r, format))
		})
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, sampleReport(types.DetailBasic), types.OutputFormat("xml"))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnsupportedFormat))
	gt.V(t, buf.Len()).Equal(0)
}

func TestRenderText(t *testing.T) {
	color.NoColor = true

	t.Run("basic shows summary and top files", func(t *testing.T) {
		out := render(t, sampleReport(types.DetailBasic), types.OutputText)
		gt.S(t, out).Contains("Eco Code Analysis Report")
		gt.S(t, out).Contains("Repository: octo/green@main")
		gt.S(t, out).Contains("Findings:          2 (error 2, warning 0, info 0)")
		gt.S(t, out).Contains("Top Files")
		gt.S(t, out).Contains("Recommendations")
		gt.S(t, out).Contains("1. flatten loops (ECO001, 2 occurrence(s))")
		gt.False(t, strings.Contains(out, "Emissions Breakdown"))
	})

	t.Run("detailed lists first findings", func(t *testing.T) {
		repo, files, _ := sampleInput()
		var findings []model.Finding
		for i := 0; i < 12; i++ {
			findings = append(findings, model.Finding{
				Path: "main.go", Line: i + 1, RuleID: "ECO010", Category: types.CategoryDatabase,
				Severity: types.SeverityWarning, Tier: types.DetailDetailed,
				Message: fmt.Sprintf("query %d", i+1), Suggestion: "batch queries",
			})
		}
		r := report.Aggregate(context.Background(), repo, files, findings, types.DetailDetailed)

		out := render(t, r, types.OutputText)
		gt.S(t, out).Contains("main.go:10")
		gt.False(t, strings.Contains(out, "main.go:11"))
		gt.S(t, out).Contains("... and 2 more")
	})

	t.Run("comprehensive shows everything", func(t *testing.T) {
		out := render(t, sampleReport(types.DetailComprehensive), types.OutputText)
		gt.S(t, out).Contains("app.py:3")
		gt.S(t, out).Contains("Languages")
		gt.S(t, out).Contains("Emissions Breakdown")
		gt.S(t, out).Contains("database")
	})

	t.Run("no findings", func(t *testing.T) {
		r := report.Aggregate(context.Background(), model.RepositoryRef{Owner: "a", Name: "b"}, nil, nil, types.DetailBasic)
		out := render(t, r, types.OutputText)
		gt.S(t, out).Contains("No issues found at this detail level.")
	})
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderTextColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	r := sampleReport(types.DetailComprehensive)

	t.Run("plain unless requested", func(t *testing.T) {
		out := render(t, r, types.OutputText)
		gt.False(t, strings.Contains(out, "\x1b["))
	})

	t.Run("colors keep the table layout", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, report.Render(&buf, r, types.OutputText, report.WithColor(true)))
		colored := buf.String()
		gt.S(t, colored).Contains("\x1b[")

		var plain bytes.Buffer
		gt.NoError(t, report.Render(&plain, r, types.OutputText, report.WithColor(false)))
		gt.V(t, ansiEscape.ReplaceAllString(colored, "")).Equal(plain.String())
	})
}

func TestRenderHTML(t *testing.T) {
	repo, files, _ := sampleInput()
	findings := []model.Finding{
		{Path: "web/app.js", Line: 2, RuleID: "ECO030", Category: types.CategoryNetwork, Severity: types.SeverityError,
			Tier: types.DetailBasic, Message: "fetch(<script>) in loop", Suggestion: "batch requests"},
	}

	t.Run("escapes content", func(t *testing.T) {
		r := report.Aggregate(context.Background(), repo, files, findings, types.DetailBasic)
		out := render(t, r, types.OutputHTML)
		gt.S(t, out).Contains("<!DOCTYPE html>")
		gt.S(t, out).Contains("octo/green")
		gt.S(t, out).Contains("fetch(&lt;script&gt;) in loop")
		gt.False(t, strings.Contains(out, "fetch(<script>)"))
		gt.False(t, strings.Contains(out, "Emissions Breakdown"))
	})

	t.Run("comprehensive has breakdown", func(t *testing.T) {
		r := report.Aggregate(context.Background(), repo, files, findings, types.DetailComprehensive)
		out := render(t, r, types.OutputHTML)
		gt.S(t, out).Contains("Emissions Breakdown")
		gt.S(t, out).Contains("network")
	})
}
