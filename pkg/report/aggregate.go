package report

import (
	"context"
	"crypto/sha256"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/scanner"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// Emission factors in kgCO2e.
const (
	PerLineKgCO2e      = 0.0001
	IssueMultiplierInc = 0.1
	MaxComplexityScore = 10.0
)

var categoryFactors = map[types.Category]float64{
	types.CategoryCPU:      0.01,
	types.CategoryMemory:   0.005,
	types.CategoryNetwork:  0.02,
	types.CategoryIO:       0.002,
	types.CategoryDatabase: 0.015,
}

type aggregateConfig struct {
	id             types.ReportID
	generatedAt    time.Time
	catalogVersion string
}

type AggregateOption func(*aggregateConfig)

func WithReportID(id types.ReportID) AggregateOption {
	return func(c *aggregateConfig) {
		c.id = id
	}
}

func WithGeneratedAt(t time.Time) AggregateOption {
	return func(c *aggregateConfig) {
		c.generatedAt = t
	}
}

func WithCatalogVersion(v string) AggregateOption {
	return func(c *aggregateConfig) {
		c.catalogVersion = v
	}
}

// Aggregate builds a report. Findings are filtered by detail level for listing and summary, while
// metrics and emissions are computed from all files and findings. The result depends only on the
// arguments: the report ID defaults to a UUID v5 of the repository, detail, catalog and file contents,
// and GeneratedAt stays zero unless WithGeneratedAt is given.
func Aggregate(ctx context.Context, repo model.RepositoryRef, files []model.SourceFile, findings []model.Finding, detail types.DetailLevel, options ...AggregateOption) *model.AnalysisReport {
	cfg := aggregateConfig{catalogVersion: scanner.CatalogVersion}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = reportID(repo, files, detail, cfg.catalogVersion)
	}

	visible := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if detail.Includes(f.Tier) {
			visible = append(visible, f)
		}
	}
	slices.SortStableFunc(visible, model.CompareFindings)

	metrics := computeMetrics(files, findings)
	logging.From(ctx).Debug("report aggregated", "report_id", cfg.id, "findings", len(visible))

	return &model.AnalysisReport{
		ID:             cfg.id,
		Repository:     repo,
		GeneratedAt:    utcOrZero(cfg.generatedAt),
		Detail:         detail,
		CatalogVersion: cfg.catalogVersion,
		Findings:       visible,
		Summary:        summarize(visible),
		Metrics:        metrics,
		Emissions:      estimateEmissions(metrics.TotalLines, findings),
	}
}

func reportID(repo model.RepositoryRef, files []model.SourceFile, detail types.DetailLevel, catalogVersion string) types.ReportID {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b model.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})

	h := sha256.New()
	for _, v := range []string{repo.String(), string(repo.Commit), string(detail), catalogVersion} {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}
	for _, f := range sorted {
		sum := sha256.Sum256(f.Content)
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write(sum[:])
	}
	return types.ReportIDOf(h.Sum(nil))
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

func summarize(findings []model.Finding) model.Summary {
	s := model.Summary{
		TotalFindings: len(findings),
		BySeverity:    map[types.Severity]int{},
		ByFile:        map[string]int{},
		ByRule:        map[string]int{},
		ByCategory:    map[types.Category]int{},
	}
	for _, f := range findings {
		s.BySeverity[f.Severity]++
		s.ByFile[f.Path]++
		s.ByRule[f.RuleID]++
		s.ByCategory[f.Category]++
	}
	return s
}

func computeMetrics(files []model.SourceFile, findings []model.Finding) model.Metrics {
	m := model.Metrics{
		FilesAnalyzed: len(files),
		Languages:     map[string]int{},
	}
	for _, f := range files {
		m.TotalLines += f.Lines()
		if lang := scanner.DetectLanguage(f.Path); lang != "" && lang != scanner.LangManifest {
			m.Languages[lang]++
		}
	}

	score := float64(len(findings))*0.5 + float64(m.TotalLines)/1000 + float64(len(m.Languages))*0.2
	m.ComplexityScore = round(math.Min(score, MaxComplexityScore), 2)
	return m
}

func estimateEmissions(lines int, findings []model.Finding) model.Emissions {
	e := model.Emissions{
		PerLineKgCO2e:   PerLineKgCO2e,
		LinesOfCode:     lines,
		IssueMultiplier: round(1+IssueMultiplierInc*float64(len(findings)), 4),
		Breakdown:       map[types.Category]float64{},
	}
	e.TotalKgCO2e = round(float64(lines)*PerLineKgCO2e*e.IssueMultiplier, 6)

	for _, f := range findings {
		if factor, ok := categoryFactors[f.Category]; ok {
			e.Breakdown[f.Category] += factor
		}
	}
	for k, v := range e.Breakdown {
		e.Breakdown[k] = round(v, 6)
	}
	return e
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
