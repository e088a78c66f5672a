package errutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/errutil"
)

func TestHandleError(t *testing.T) {
	t.Run("handle error with context", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", errors.New("test error"))
	})

	t.Run("handle expected error", func(t *testing.T) {
		err := goerr.Wrap(types.ErrNotFound, "repository not found")
		errutil.HandleError(context.Background(), "test message", err)
	})

	t.Run("handle nil error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", nil)
	})
}

func TestIsExpected(t *testing.T) {
	testCases := map[string]struct {
		err  error
		want bool
	}{
		"auth":        {err: goerr.Wrap(types.ErrAuthentication, "bad token"), want: true},
		"rate limit":  {err: goerr.Wrap(types.ErrRateLimit, "quota"), want: true},
		"bad format":  {err: goerr.Wrap(types.ErrUnsupportedFormat, "xml"), want: true},
		"network":     {err: goerr.Wrap(types.ErrNetwork, "timeout"), want: false},
		"plain error": {err: errors.New("boom"), want: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, errutil.IsExpected(tc.err)).Equal(tc.want)
		})
	}
}
