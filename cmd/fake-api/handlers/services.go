package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/r2r72/fake-api/internal/service/catalog"
)

const detailNotFound = "Service not found"

// RegisterServiceRoutes монтирует маршруты каталога под prefix
// отдельным саб-роутером.
func RegisterServiceRoutes(mux *http.ServeMux, prefix string, d Deps) {
	sub := http.NewServeMux()
	sub.HandleFunc("GET /{$}", withError(d.Logger, handleListServices(d.Catalog)))
	sub.HandleFunc("GET /{id}", withError(d.Logger, handleGetService(d.Catalog)))

	mux.HandleFunc("GET "+prefix, withError(d.Logger, handleListServices(d.Catalog)))
	mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix, &router{mux: sub}))
}

// === Обработчики ===

// handleListServices отдаёт весь каталог JSON-массивом.
func handleListServices(c Catalog) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		return writeJSON(w, http.StatusOK, c.List())
	}
}

// handleGetService отдаёт одну запись.
// Ошибки: 422 (id не число), 404 (нет такого id, в т.ч. вне диапазона int).
func handleGetService(c Catalog) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		raw := r.PathValue("id")
		id, err := strconv.Atoi(raw)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				// Целое, но не влезает в int — такого id в каталоге точно нет.
				writeDetail(w, http.StatusNotFound, detailNotFound)
				return nil
			}
			writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid service id %q: must be an integer", raw))
			return nil
		}

		svc, err := c.Get(id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				writeDetail(w, http.StatusNotFound, detailNotFound)
				return nil
			}
			return err // 500
		}

		return writeJSON(w, http.StatusOK, svc)
	}
}
