package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: reports are rendered with escaping by html/template or as plain text/json with explicit content type
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

type config struct {
	webhookSecret types.GitHubWebhookSecret
	detail        types.DetailLevel
	fetch         model.FetchOptions
	runner        func(func())
}

type Option func(*config)

func WithGitHubSecret(secret types.GitHubWebhookSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

// WithDetail sets detail level of reports created by webhook events and the default of the report API.
func WithDetail(detail types.DetailLevel) Option {
	return func(cfg *config) {
		cfg.detail = detail
	}
}

func WithFetchOptions(opt model.FetchOptions) Option {
	return func(cfg *config) {
		cfg.fetch = opt
	}
}

// WithRunner replaces how background analysis is started. Default runs it in a new goroutine.
func WithRunner(runner func(func())) Option {
	return func(cfg *config) {
		cfg.runner = runner
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		detail: types.DetailBasic,
		runner: func(fn func()) { go fn() },
	}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Get("/api/v1/repos/{owner}/{repo}/report", handleReport(uc, cfg))
	r.Post("/webhook/github", handleGitHubWebhook(uc, cfg))

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// statusCode maps an error to HTTP status code of the response.
func statusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrInvalidOption),
		errors.Is(err, types.ErrValidationFailed),
		errors.Is(err, types.ErrInvalidRepositoryURL):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, types.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
