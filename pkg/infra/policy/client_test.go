package policy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra/policy"
)

const testPolicy = `package ecocoder

import rego.v1

fail contains {"rule": "no_basic_findings", "message": msg} if {
	input.summary.by_severity.error > 0
	msg := sprintf("%d error findings", [input.summary.by_severity.error])
}
`

func writePolicy(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "policy.rego"), []byte(testPolicy), 0600))
	return dir
}

func TestQuery(t *testing.T) {
	client := gt.R1(policy.New(writePolicy(t))).NoError(t)

	t.Run("violation", func(t *testing.T) {
		input := map[string]any{
			"summary": map[string]any{"by_severity": map[string]any{"error": 2}},
		}
		var result model.PolicyResult
		gt.NoError(t, client.Query(context.Background(), input, &result))
		gt.V(t, len(result.Fail)).Equal(1)
		gt.V(t, result.Fail[0].Rule).Equal("no_basic_findings")
		gt.V(t, result.Fail[0].Message).Equal("2 error findings")
	})

	t.Run("pass", func(t *testing.T) {
		input := map[string]any{
			"summary": map[string]any{"by_severity": map[string]any{"warning": 5}},
		}
		var result model.PolicyResult
		gt.NoError(t, client.Query(context.Background(), input, &result))
		gt.V(t, len(result.Fail)).Equal(0)
	})
}

func TestNewWithoutPath(t *testing.T) {
	_, err := policy.New()
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
