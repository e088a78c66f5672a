package cli

import (
	"errors"

	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	table := []struct {
		target error
		code   int
	}{
		{types.ErrInvalidOption, 2},
		{types.ErrValidationFailed, 2},
		{types.ErrUnsupportedFormat, 2},
		{types.ErrInvalidRepositoryURL, 2},
		{types.ErrAuthentication, 3},
		{types.ErrNotFound, 4},
		{types.ErrRateLimit, 5},
		{types.ErrNetwork, 6},
		{types.ErrPolicyViolation, 7},
	}
	for _, t := range table {
		if errors.Is(err, t.target) {
			return t.code
		}
	}

	return 1
}
