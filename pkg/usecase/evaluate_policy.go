package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// EvaluatePolicy runs the policy gate against the report. It returns ErrPolicyViolation together with
// the result when the policy reports any failure. Without a policy, the report always passes.
func (x *UseCase) EvaluatePolicy(ctx context.Context, r *model.AnalysisReport) (*model.PolicyResult, error) {
	result := &model.PolicyResult{}

	policy := x.clients.Policy()
	if policy == nil {
		return result, nil
	}

	if err := policy.Query(ctx, r, result); err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate policy", goerr.V("report_id", r.ID))
	}

	if len(result.Fail) > 0 {
		logging.From(ctx).Warn("policy violation", "report_id", r.ID, "violations", result.Fail)
		return result, goerr.Wrap(types.ErrPolicyViolation, "report does not pass the policy",
			goerr.V("report_id", r.ID),
			goerr.V("violations", len(result.Fail)),
		)
	}

	return result, nil
}
