package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// expected errors are caused by user input or remote state and are not reported to Sentry.
var expected = []error{
	types.ErrInvalidOption,
	types.ErrInvalidRepositoryURL,
	types.ErrUnsupportedFormat,
	types.ErrAuthentication,
	types.ErrNotFound,
	types.ErrRateLimit,
	types.ErrPolicyViolation,
}

// IsExpected reports whether err is caused by user input or remote state rather than a bug.
func IsExpected(err error) bool {
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	if IsExpected(err) {
		logging.From(ctx).Warn(msg, "error", err)
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}
