package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderEnvironment = "X-Environment"
	HeaderRequestID   = "X-Request-ID"
)

// === Middleware ===

// WithEnvironment ставит X-Environment на каждый ответ, перезаписывая
// значение обработчика. Ответы с ошибками тоже.
func WithEnvironment(env string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ew := &envWriter{ResponseWriter: w, env: env}
		next.ServeHTTP(ew, r)
		if !ew.committed {
			// Ничего не записано — заголовки ещё открыты.
			ew.Header().Set(HeaderEnvironment, env)
		}
	})
}

// envWriter ставит заголовок прямо перед отправкой заголовков.
type envWriter struct {
	http.ResponseWriter
	env       string
	committed bool
}

func (w *envWriter) WriteHeader(code int) {
	if !w.committed {
		w.committed = true
		w.Header().Set(HeaderEnvironment, w.env)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *envWriter) Write(p []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

func (w *envWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// WithRequestLog присваивает запросу id и логирует его после ответа.
// Входящий X-Request-ID сохраняется.
func WithRequestLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Int("bytes", sw.bytes),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
