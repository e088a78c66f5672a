package model

import (
	"sort"
	"time"

	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// AnalysisReport is the complete, aggregated scan result for one repository.
type AnalysisReport struct {
	ID             types.ReportID    `json:"id"`
	Repository     RepositoryRef     `json:"repository"`
	GeneratedAt    time.Time         `json:"generated_at,omitzero"`
	Detail         types.DetailLevel `json:"detail"`
	CatalogVersion string            `json:"catalog_version"`
	Findings       []Finding         `json:"findings"`
	Summary        Summary           `json:"summary"`
	Metrics        Metrics           `json:"metrics"`
	Emissions      Emissions         `json:"emissions"`
}

// Summary has counts of findings surfaced at the requested detail level.
type Summary struct {
	TotalFindings int                    `json:"total_findings"`
	BySeverity    map[types.Severity]int `json:"by_severity"`
	ByFile        map[string]int         `json:"by_file"`
	ByRule        map[string]int         `json:"by_rule"`
	ByCategory    map[types.Category]int `json:"by_category"`
}

type Metrics struct {
	FilesAnalyzed   int            `json:"files_analyzed"`
	TotalLines      int            `json:"total_lines"`
	Languages       map[string]int `json:"languages"`
	ComplexityScore float64        `json:"complexity_score"`
}

// Emissions is a rough carbon estimate of the analyzed code.
type Emissions struct {
	TotalKgCO2e     float64                    `json:"total_kgco2e"`
	PerLineKgCO2e   float64                    `json:"per_line_kgco2e"`
	LinesOfCode     int                        `json:"lines_of_code"`
	IssueMultiplier float64                    `json:"issue_multiplier"`
	Breakdown       map[types.Category]float64 `json:"breakdown"`
}

// KeyCount is a flattened map entry. BigQuery does not support map columns.
type KeyCount struct {
	Key   string `json:"key" bigquery:"key"`
	Count int    `json:"count" bigquery:"count"`
}

// ReportRecord is a row of the report export table.
type ReportRecord struct {
	ID              string        `json:"id" bigquery:"id"`
	Timestamp       int64         `json:"timestamp" bigquery:"timestamp"`
	Repository      RepositoryRef `json:"repository" bigquery:"repository"`
	Detail          string        `json:"detail" bigquery:"detail"`
	CatalogVersion  string        `json:"catalog_version" bigquery:"catalog_version"`
	TotalFindings   int           `json:"total_findings" bigquery:"total_findings"`
	BySeverity      []KeyCount    `json:"by_severity" bigquery:"by_severity"`
	ByRule          []KeyCount    `json:"by_rule" bigquery:"by_rule"`
	ByCategory      []KeyCount    `json:"by_category" bigquery:"by_category"`
	FilesAnalyzed   int           `json:"files_analyzed" bigquery:"files_analyzed"`
	TotalLines      int           `json:"total_lines" bigquery:"total_lines"`
	ComplexityScore float64       `json:"complexity_score" bigquery:"complexity_score"`
	TotalKgCO2e     float64       `json:"total_kgco2e" bigquery:"total_kgco2e"`
	Findings        []Finding     `json:"findings" bigquery:"findings"`
}

// ToRecord converts the report to a BigQuery row.
func (x *AnalysisReport) ToRecord() *ReportRecord {
	return &ReportRecord{
		ID:              x.ID.String(),
		Timestamp:       x.GeneratedAt.UnixMicro(),
		Repository:      x.Repository,
		Detail:          string(x.Detail),
		CatalogVersion:  x.CatalogVersion,
		TotalFindings:   x.Summary.TotalFindings,
		BySeverity:      toKeyCounts(x.Summary.BySeverity),
		ByRule:          toKeyCounts(x.Summary.ByRule),
		ByCategory:      toKeyCounts(x.Summary.ByCategory),
		FilesAnalyzed:   x.Metrics.FilesAnalyzed,
		TotalLines:      x.Metrics.TotalLines,
		ComplexityScore: x.Metrics.ComplexityScore,
		TotalKgCO2e:     x.Emissions.TotalKgCO2e,
		Findings:        x.Findings,
	}
}

func toKeyCounts[K ~string](m map[K]int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for k, v := range m {
		out = append(out, KeyCount{Key: string(k), Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
