package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/josh-kwaku/codemart/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestAttrs collects attributes learned by inner handlers, such as the
// authenticated user, for the completion line.
type requestAttrs struct {
	mu    sync.Mutex
	attrs []any
}

type requestAttrsKey struct{}

// annotateRequest adds attrs to the request-scoped logger and to the
// completion line written by Logging.
func annotateRequest(ctx context.Context, attrs ...any) context.Context {
	if ra, ok := ctx.Value(requestAttrsKey{}).(*requestAttrs); ok {
		ra.mu.Lock()
		ra.attrs = append(ra.attrs, attrs...)
		ra.mu.Unlock()
	}
	return logging.WithLogger(ctx, logging.FromContext(ctx).With(attrs...))
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		logger := logging.FromContext(r.Context()).With("request_id", TraceIDFromContext(r.Context()))
		ra := &requestAttrs{}
		ctx := context.WithValue(r.Context(), requestAttrsKey{}, ra)
		ctx = logging.WithLogger(ctx, logger)
		r = r.WithContext(ctx)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		ra.mu.Lock()
		attrs := append([]any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}, ra.attrs...)
		ra.mu.Unlock()

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request completed", attrs...)
	})
}
