package usecase

import (
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/scanner"
)

type UseCase struct {
	clients *infra.Clients
	scanner *scanner.Scanner

	storagePrefix string
	storageFormat types.OutputFormat
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

func WithScanner(s *scanner.Scanner) Option {
	return func(x *UseCase) {
		x.scanner = s
	}
}

// WithStoragePrefix sets prefix of uploaded report object names.
func WithStoragePrefix(prefix string) Option {
	return func(x *UseCase) {
		x.storagePrefix = prefix
	}
}

// WithStorageFormat sets the format of uploaded reports. Default is json.
func WithStorageFormat(format types.OutputFormat) Option {
	return func(x *UseCase) {
		x.storageFormat = format
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:       clients,
		storageFormat: types.OutputJSON,
	}
	for _, opt := range options {
		opt(uc)
	}
	if uc.scanner == nil {
		uc.scanner = scanner.New()
	}
	return uc
}
