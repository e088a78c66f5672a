package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidOption is returned when a command line option or function option is invalid.
	ErrInvalidOption = goerr.New("invalid option")

	// ErrValidationFailed is returned when a domain object does not satisfy its constraints.
	ErrValidationFailed = goerr.New("validation failed")

	// ErrInvalidRepositoryURL is returned when the repository URL is not a github.com repository URL.
	ErrInvalidRepositoryURL = goerr.New("invalid repository URL")

	// ErrInvalidGitHubData is returned when GitHub responded with data that can not be used.
	ErrInvalidGitHubData = goerr.New("invalid GitHub data")

	// ErrAuthentication is returned when the GitHub credential is missing or rejected.
	ErrAuthentication = goerr.New("authentication failed")

	// ErrNotFound is returned when the repository, ref or path does not exist.
	ErrNotFound = goerr.New("not found")

	// ErrRateLimit is returned when the GitHub API quota is exhausted.
	ErrRateLimit = goerr.New("rate limit exceeded")

	// ErrNetwork is returned when GitHub can not be reached or keeps failing.
	ErrNetwork = goerr.New("network error")

	// ErrUnsupportedFormat is returned for an unknown report output format.
	ErrUnsupportedFormat = goerr.New("unsupported output format")

	// ErrPolicyViolation is returned when the report does not pass the policy gate.
	ErrPolicyViolation = goerr.New("policy violation")
)
