package server

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/report"
	"github.com/secmon-lab/ecocoder/pkg/utils/errutil"
)

func handleReport(uc interfaces.UseCase, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()

		format := types.OutputJSON
		if v := query.Get("format"); v != "" {
			f, err := types.ParseOutputFormat(v)
			if err != nil {
				writeError(w, r, "invalid report format", err)
				return
			}
			format = f
		}

		detail := cfg.detail
		if v := query.Get("detail"); v != "" {
			d, err := types.ParseDetailLevel(v)
			if err != nil {
				writeError(w, r, "invalid detail level", err)
				return
			}
			detail = d
		}

		input := &model.AnalyzeRepositoryInput{
			Repository: model.RepositoryRef{
				Owner: chi.URLParam(r, "owner"),
				Name:  chi.URLParam(r, "repo"),
				Ref:   query.Get("ref"),
			},
			Detail: detail,
			Fetch:  cfg.fetch,
		}

		rpt, err := uc.AnalyzeRepository(ctx, input)
		if err != nil {
			writeError(w, r, "fail to analyze repository", err)
			return
		}

		var buf bytes.Buffer
		if err := report.Render(&buf, rpt, format); err != nil {
			writeError(w, r, "fail to render report", err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		safeWrite(w, http.StatusOK, buf.Bytes())
	}
}

func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	errutil.HandleError(r.Context(), msg, err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	code := statusCode(err)
	safeWrite(w, code, []byte(http.StatusText(code)+": "+err.Error()))
}
