package report

import (
	"sort"
	"strconv"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

const maxRecommendations = 5

type Recommendation struct {
	RuleID     string
	Count      int
	Severity   types.Severity
	Suggestion string
}

// Recommendations returns suggestions of the most frequent rules in the report, most severe first.
func Recommendations(report *model.AnalysisReport) []Recommendation {
	byRule := map[string]*Recommendation{}
	for _, f := range report.Findings {
		if f.Suggestion == "" {
			continue
		}
		r, ok := byRule[f.RuleID]
		if !ok {
			r = &Recommendation{RuleID: f.RuleID, Severity: f.Severity, Suggestion: f.Suggestion}
			byRule[f.RuleID] = r
		}
		r.Count++
	}

	recs := make([]Recommendation, 0, len(byRule))
	for _, r := range byRule {
		recs = append(recs, *r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if a, b := severityRank(recs[i].Severity), severityRank(recs[j].Severity); a != b {
			return a < b
		}
		if recs[i].Count != recs[j].Count {
			return recs[i].Count > recs[j].Count
		}
		return recs[i].RuleID < recs[j].RuleID
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func severityRank(s types.Severity) int {
	for i, v := range types.Severities {
		if v == s {
			return i
		}
	}
	return len(types.Severities)
}

// Equivalents used to put an emission estimate in context.
const (
	kgCO2ePerSmartphoneCharge = 0.00822
	kgCO2ePerKmDriven         = 0.12
)

func smartphoneCharges(kg float64) float64 {
	return kg / kgCO2ePerSmartphoneCharge
}

func kmDriven(kg float64) float64 {
	return kg / kgCO2ePerKmDriven
}

type categoryAmount struct {
	Category types.Category
	KgCO2e   float64
}

func sortedBreakdown(e model.Emissions) []categoryAmount {
	out := make([]categoryAmount, 0, len(e.Breakdown))
	for c, v := range e.Breakdown {
		out = append(out, categoryAmount{Category: c, KgCO2e: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KgCO2e != out[j].KgCO2e {
			return out[i].KgCO2e > out[j].KgCO2e
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type nameCount struct {
	Name  string
	Count int
}

func sortedCounts[K ~string](m map[K]int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for k, v := range m {
		out = append(out, nameCount{Name: string(k), Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func formatFloat(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}
