package usecase

import "github.com/secmon-lab/ecocoder/pkg/domain/model"

// Export unexported functions for testing
var (
	DownloadZipFileForTest   = downloadZipFile
	StepDownDirectoryForTest = stepDownDirectory
	IsBinaryForTest          = isBinary
	EnsureReportTableForTest = ensureReportTable
)

// AcceptedPathsForTest returns paths accepted by a file filter built from opt, in input order.
func AcceptedPathsForTest(opt model.FetchOptions, sizes map[string]int64, paths ...string) []string {
	filter := newFileFilter(opt)
	var accepted []string
	for _, p := range paths {
		if filter.accept(p, sizes[p]) {
			accepted = append(accepted, p)
		}
	}
	return accepted
}
