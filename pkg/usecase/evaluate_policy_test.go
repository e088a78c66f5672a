package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/mock"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/infra/policy"
	"github.com/secmon-lab/ecocoder/pkg/usecase"
)

func TestEvaluatePolicyWithoutPolicy(t *testing.T) {
	uc := usecase.New(infra.New())
	result, err := uc.EvaluatePolicy(context.Background(), testReport())
	gt.NoError(t, err)
	gt.V(t, len(result.Fail)).Equal(0)
}

func TestEvaluatePolicyMock(t *testing.T) {
	t.Run("violation", func(t *testing.T) {
		p := &mock.PolicyMock{
			QueryFunc: func(ctx context.Context, input any, output any) error {
				r, ok := input.(*model.AnalysisReport)
				gt.True(t, ok)
				gt.V(t, r.ID).Equal(types.ReportID("r-1"))

				out, ok := output.(*model.PolicyResult)
				gt.True(t, ok)
				out.Fail = append(out.Fail, model.PolicyViolation{Rule: "max-findings", Message: "too many"})
				return nil
			},
		}
		uc := usecase.New(infra.New(infra.WithPolicy(p)))
		result, err := uc.EvaluatePolicy(context.Background(), testReport())
		gt.True(t, errors.Is(err, types.ErrPolicyViolation))
		gt.V(t, result.Fail).Equal([]model.PolicyViolation{{Rule: "max-findings", Message: "too many"}})
	})

	t.Run("query error", func(t *testing.T) {
		p := &mock.PolicyMock{
			QueryFunc: func(ctx context.Context, input any, output any) error {
				return goerr.New("broken policy")
			},
		}
		uc := usecase.New(infra.New(infra.WithPolicy(p)))
		_, err := uc.EvaluatePolicy(context.Background(), testReport())
		gt.Error(t, err)
		gt.False(t, errors.Is(err, types.ErrPolicyViolation))
	})
}

const testPolicy = `package ecocoder

import rego.v1

fail contains {"rule": "no-network-in-loop", "message": msg} if {
	some f in input.findings
	f.rule_id == "ECO011"
	msg := sprintf("%s:%d", [f.path, f.line])
}

fail contains {"rule": "max-findings", "message": "too many findings"} if {
	input.summary.total_findings > 10
}
`

func TestEvaluatePolicyRego(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "policy.rego"), []byte(testPolicy), 0600))
	client := gt.R1(policy.New(dir)).NoError(t)
	uc := usecase.New(infra.New(infra.WithPolicy(client)))

	t.Run("pass", func(t *testing.T) {
		result, err := uc.EvaluatePolicy(context.Background(), testReport())
		gt.NoError(t, err)
		gt.V(t, len(result.Fail)).Equal(0)
	})

	t.Run("fail", func(t *testing.T) {
		r := testReport()
		r.Findings = append(r.Findings, model.Finding{Path: "api.go", Line: 7, RuleID: "ECO011"})
		result, err := uc.EvaluatePolicy(context.Background(), r)
		gt.True(t, errors.Is(err, types.ErrPolicyViolation))
		gt.V(t, result.Fail).Equal([]model.PolicyViolation{{Rule: "no-network-in-loop", Message: "api.go:7"}})
	})
}
