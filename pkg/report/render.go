package report

import (
	"bytes"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

type renderer func(w io.Writer, report *model.AnalysisReport, cfg *renderConfig) error

type renderConfig struct {
	color bool
}

type RenderOption func(*renderConfig)

// WithColor enables ANSI colors in text output. Colors are off by default.
func WithColor(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.color = enabled
	}
}

var renderers = map[types.OutputFormat]renderer{
	types.OutputText: renderText,
	types.OutputJSON: renderJSON,
	types.OutputHTML: renderHTML,
}

// Render writes the report in the given format. Output is built in memory first, so nothing is
// written to w when rendering fails.
func Render(w io.Writer, report *model.AnalysisReport, format types.OutputFormat, options ...RenderOption) error {
	fn, ok := renderers[format]
	if !ok {
		return goerr.Wrap(types.ErrUnsupportedFormat, "no renderer for the format", goerr.V("format", format))
	}
	if report == nil {
		return goerr.New("report is nil")
	}

	var cfg renderConfig
	for _, opt := range options {
		opt(&cfg)
	}

	var buf bytes.Buffer
	if err := fn(&buf, report, &cfg); err != nil {
		return goerr.Wrap(err, "failed to render report", goerr.V("format", format))
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("format", format))
	}
	return nil
}
