package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
)

type UseCase interface {
	FetchRepository(ctx context.Context, input *model.AnalyzeRepositoryInput) (*model.RepositoryRef, []model.SourceFile, error)
	AnalyzeRepository(ctx context.Context, input *model.AnalyzeRepositoryInput) (*model.AnalysisReport, error)
	AnalyzeDirectory(ctx context.Context, input *model.AnalyzeDirectoryInput) (*model.AnalysisReport, error)
	ExportReport(ctx context.Context, report *model.AnalysisReport) error
	EvaluatePolicy(ctx context.Context, report *model.AnalysisReport) (*model.PolicyResult, error)
}
