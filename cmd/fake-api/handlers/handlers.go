// Package handlers содержит HTTP-обработчики fake-api.
//
// Все эндпоинты:
//
//	GET /status          — имя сервиса и окружение
//	GET /health          — liveness probe
//	GET /services        — весь каталог
//	GET /services/{id}   — одна запись каталога
//
// Общее:
//   - Каждый ответ несёт заголовок X-Environment (включая ошибки)
//   - Ошибки в формате JSON: { "detail": "..." }
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/r2r72/fake-api/internal/service/catalog"
)

// Catalog — read-only сторона catalog.Catalog.
type Catalog interface {
	List() []catalog.Service
	Get(id int) (catalog.Service, error)
}

// Deps — зависимости обработчиков. Все только для чтения.
type Deps struct {
	Catalog     Catalog
	Environment string
	Logger      *slog.Logger
}

// New собирает цепочку: логирование запроса → X-Environment → роутер.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	RegisterStatusRoutes(mux, d)
	RegisterServiceRoutes(mux, "/services", d)

	var h http.Handler = &router{mux: mux}
	h = WithEnvironment(d.Environment, h)
	h = WithRequestLog(d.Logger, h)
	return h
}

// === Ответы ===

// ErrorResponse — тело любого не-2xx ответа.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// withError превращает возвращённую ошибку в 500.
// Если ответ уже начат, статус не переписывается — только лог.
func withError(logger *slog.Logger, h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		err := h(sw, r)
		if err == nil {
			return
		}
		logger.ErrorContext(r.Context(), "⚠️ HTTP error",
			"method", r.Method, "path", r.URL.Path, "committed", sw.status != 0, "err", err)
		if sw.status == 0 {
			writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	_ = writeJSON(w, status, ErrorResponse{Detail: detail})
}

// === Роутинг ===

// router отвечает на несматченные запросы (404, 405) JSON-телом вместо
// текстового от ServeMux. Заголовки вроде Allow сохраняются.
type router struct {
	mux *http.ServeMux
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, pattern := rt.mux.Handler(r)
	if pattern != "" {
		rt.mux.ServeHTTP(w, r)
		return
	}

	dw := &discardWriter{ResponseWriter: w, code: http.StatusNotFound}
	h.ServeHTTP(dw, r)
	writeDetail(w, dw.code, http.StatusText(dw.code))
}

// discardWriter запоминает код и выбрасывает тело.
type discardWriter struct {
	http.ResponseWriter
	code int
}

func (d *discardWriter) WriteHeader(code int) { d.code = code }

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }
