package model

import (
	"cmp"

	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// Finding is a single flagged pattern in one file.
type Finding struct {
	Path       string            `json:"path" bigquery:"path"`
	Line       int               `json:"line,omitempty" bigquery:"line"`
	RuleID     string            `json:"rule_id" bigquery:"rule_id"`
	Category   types.Category    `json:"category" bigquery:"category"`
	Severity   types.Severity    `json:"severity" bigquery:"severity"`
	Tier       types.DetailLevel `json:"tier" bigquery:"tier"`
	Message    string            `json:"message" bigquery:"message"`
	Suggestion string            `json:"suggestion,omitempty" bigquery:"suggestion"`
}

// CompareFindings orders findings by path, line and rule ID.
func CompareFindings(a, b Finding) int {
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	return cmp.Compare(a.RuleID, b.RuleID)
}
