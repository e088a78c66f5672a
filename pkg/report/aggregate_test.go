package report_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/report"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleInput() (model.RepositoryRef, []model.SourceFile, []model.Finding) {
	repo := model.RepositoryRef{Owner: "octo", Name: "green", Ref: "main", Commit: "0123456789abcdef"}
	files := []model.SourceFile{
		model.NewSourceFile("main.go", []byte(strings.Repeat("x\n", 1000))),
		model.NewSourceFile("app.py", []byte(strings.Repeat("y\n", 500))),
		model.NewSourceFile("go.mod", []byte("module example.com/green\n")),
	}
	findings := []model.Finding{
		{Path: "main.go", Line: 10, RuleID: "ECO001", Category: types.CategoryCPU, Severity: types.SeverityError, Tier: types.DetailBasic, Message: "nested loop", Suggestion: "flatten loops"},
		{Path: "main.go", Line: 5, RuleID: "ECO010", Category: types.CategoryDatabase, Severity: types.SeverityWarning, Tier: types.DetailDetailed, Message: "query in loop", Suggestion: "batch queries"},
		{Path: "app.py", Line: 3, RuleID: "ECO020", Category: types.CategoryMemory, Severity: types.SeverityInfo, Tier: types.DetailComprehensive, Message: "deepcopy", Suggestion: "avoid deep copies"},
		{Path: "app.py", Line: 1, RuleID: "ECO001", Category: types.CategoryCPU, Severity: types.SeverityError, Tier: types.DetailBasic, Message: "nested loop", Suggestion: "flatten loops"},
	}
	return repo, files, findings
}

func TestAggregateDetailLevels(t *testing.T) {
	repo, files, findings := sampleInput()

	testCases := map[types.DetailLevel][]string{
		types.DetailBasic:         {"app.py:ECO001", "main.go:ECO001"},
		types.DetailDetailed:      {"app.py:ECO001", "main.go:ECO010", "main.go:ECO001"},
		types.DetailComprehensive: {"app.py:ECO001", "app.py:ECO020", "main.go:ECO010", "main.go:ECO001"},
	}

	for detail, expected := range testCases {
		t.Run(string(detail), func(t *testing.T) {
			r := report.Aggregate(context.Background(), repo, files, findings, detail,
				report.WithReportID("r-1"), report.WithGeneratedAt(fixedTime))

			var actual []string
			for _, f := range r.Findings {
				actual = append(actual, f.Path+":"+f.RuleID)
			}
			gt.V(t, actual).Equal(expected)
			gt.V(t, r.Summary.TotalFindings).Equal(len(expected))
			gt.V(t, r.Detail).Equal(detail)

			// metrics and emissions do not depend on the detail level
			gt.V(t, r.Metrics.FilesAnalyzed).Equal(3)
			gt.V(t, r.Metrics.TotalLines).Equal(1501)
			gt.V(t, r.Emissions.IssueMultiplier).Equal(1.4)
		})
	}
}

func TestAggregateSummary(t *testing.T) {
	repo, files, findings := sampleInput()
	r := report.Aggregate(context.Background(), repo, files, findings, types.DetailComprehensive)

	gt.V(t, r.Summary.BySeverity[types.SeverityError]).Equal(2)
	gt.V(t, r.Summary.BySeverity[types.SeverityWarning]).Equal(1)
	gt.V(t, r.Summary.BySeverity[types.SeverityInfo]).Equal(1)
	gt.V(t, r.Summary.ByFile["main.go"]).Equal(2)
	gt.V(t, r.Summary.ByFile["app.py"]).Equal(2)
	gt.V(t, r.Summary.ByRule["ECO001"]).Equal(2)
	gt.V(t, r.Summary.ByCategory[types.CategoryCPU]).Equal(2)
	gt.V(t, r.Summary.ByCategory[types.CategoryDatabase]).Equal(1)
}

func TestAggregateMetrics(t *testing.T) {
	repo, files, findings := sampleInput()
	r := report.Aggregate(context.Background(), repo, files, findings, types.DetailBasic)

	gt.V(t, r.Metrics.Languages).Equal(map[string]int{"go": 1, "python": 1})
	gt.V(t, r.Metrics.ComplexityScore).Equal(3.9)

	gt.V(t, r.Emissions.LinesOfCode).Equal(1501)
	gt.V(t, r.Emissions.PerLineKgCO2e).Equal(report.PerLineKgCO2e)
	gt.V(t, r.Emissions.TotalKgCO2e).Equal(0.21014)
	gt.V(t, r.Emissions.Breakdown).Equal(map[types.Category]float64{
		types.CategoryCPU:      0.02,
		types.CategoryDatabase: 0.015,
		types.CategoryMemory:   0.005,
	})
}

func TestAggregateComplexityCap(t *testing.T) {
	repo, files, _ := sampleInput()
	var findings []model.Finding
	for i := 0; i < 30; i++ {
		findings = append(findings, model.Finding{Path: "main.go", Line: i + 1, RuleID: "ECO001", Severity: types.SeverityError, Tier: types.DetailBasic})
	}

	r := report.Aggregate(context.Background(), repo, files, findings, types.DetailBasic)
	gt.V(t, r.Metrics.ComplexityScore).Equal(report.MaxComplexityScore)
}

func TestAggregateEmpty(t *testing.T) {
	r := report.Aggregate(context.Background(), model.RepositoryRef{Owner: "a", Name: "b"}, nil, nil, types.DetailBasic)

	gt.V(t, r.Summary.TotalFindings).Equal(0)
	gt.V(t, len(r.Findings)).Equal(0)
	gt.True(t, r.Summary.BySeverity != nil)
	gt.V(t, r.Emissions.TotalKgCO2e).Equal(0.0)
	gt.V(t, r.Emissions.IssueMultiplier).Equal(1.0)
	gt.V(t, r.Metrics.ComplexityScore).Equal(0.0)
}

func TestAggregateIdempotent(t *testing.T) {
	repo, files, findings := sampleInput()

	r1 := report.Aggregate(context.Background(), repo, files, findings, types.DetailDetailed)
	r2 := report.Aggregate(context.Background(), repo, files, findings, types.DetailDetailed)
	gt.V(t, *r1).Equal(*r2)
	gt.True(t, r1.GeneratedAt.IsZero())

	// the context clock is not part of the aggregated value
	ctx := logging.CtxWithClock(context.Background(), func() time.Time { return fixedTime })
	r3 := report.Aggregate(ctx, repo, files, findings, types.DetailDetailed)
	gt.V(t, *r3).Equal(*r1)

	// input order does not change the output
	reversed := make([]model.Finding, len(findings))
	for i, f := range findings {
		reversed[len(findings)-1-i] = f
	}
	reversedFiles := make([]model.SourceFile, len(files))
	for i, f := range files {
		reversedFiles[len(files)-1-i] = f
	}
	r4 := report.Aggregate(context.Background(), repo, reversedFiles, reversed, types.DetailDetailed)
	gt.V(t, *r4).Equal(*r1)

	// input slice is not modified
	gt.V(t, findings[0].Path).Equal("main.go")
	gt.V(t, findings[0].Line).Equal(10)

	stamped := report.Aggregate(context.Background(), repo, files, findings, types.DetailDetailed, report.WithGeneratedAt(fixedTime))
	gt.V(t, stamped.GeneratedAt).Equal(fixedTime)
	gt.V(t, stamped.ID).Equal(r1.ID)
}

func TestAggregateDefaultID(t *testing.T) {
	repo, files, findings := sampleInput()
	base := report.Aggregate(context.Background(), repo, files, findings, types.DetailBasic)
	gt.V(t, base.ID).NotEqual("")
	gt.V(t, base.CatalogVersion).NotEqual("")

	otherCommit := repo
	otherCommit.Commit = "0000000000000000000000000000000000000000"
	gt.V(t, report.Aggregate(context.Background(), otherCommit, files, findings, types.DetailBasic).ID).NotEqual(base.ID)
	gt.V(t, report.Aggregate(context.Background(), repo, files, findings, types.DetailComprehensive).ID).NotEqual(base.ID)

	changed := append([]model.SourceFile{}, files...)
	changed[0] = model.NewSourceFile(changed[0].Path, append([]byte("// edited\n"), changed[0].Content...))
	gt.V(t, report.Aggregate(context.Background(), repo, changed, findings, types.DetailBasic).ID).NotEqual(base.ID)

	gt.V(t, report.Aggregate(context.Background(), repo, files, findings, types.DetailBasic, report.WithReportID("fixed")).ID).Equal(types.ReportID("fixed"))
}

func TestRecommendations(t *testing.T) {
	repo, files, findings := sampleInput()
	r := report.Aggregate(context.Background(), repo, files, findings, types.DetailComprehensive)

	recs := report.Recommendations(r)
	gt.V(t, len(recs)).Equal(3)
	gt.V(t, recs[0].RuleID).Equal("ECO001")
	gt.V(t, recs[0].Count).Equal(2)
	gt.V(t, recs[1].RuleID).Equal("ECO010")
	gt.V(t, recs[2].RuleID).Equal("ECO020")
}
