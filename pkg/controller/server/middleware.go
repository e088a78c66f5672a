package server

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/utils/errutil"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.String("request_id", string(reqID)))
		ctx = logging.With(ctx, logger)

		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		requestedAt := time.Now()
		defer func() {
			if v := recover(); v != nil {
				errutil.HandleError(ctx, "panic in http handler",
					goerr.New("recovered from panic", goerr.V("panic", v), goerr.V("path", r.URL.Path)))
				if !lw.written {
					safeWrite(lw, http.StatusInternalServerError, []byte("internal server error"))
				}
			}

			logger.Info("http access",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status_code", lw.statusCode),
				slog.Int64("content_length", r.ContentLength),
				slog.String("user_agent", r.UserAgent()),
				slog.Duration("elapsed", time.Since(requestedAt)),
			)
		}()

		next.ServeHTTP(lw, r.WithContext(ctx))
	})
}

// statusCodeLogger records the status code for the access log.
type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.written = true
	x.ResponseWriter.WriteHeader(code)
}

func (x *statusCodeLogger) Write(b []byte) (int, error) {
	x.written = true
	return x.ResponseWriter.Write(b)
}
