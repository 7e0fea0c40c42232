package handlers

import "net/http"

// ServiceName — имя сервиса в ответе /status.
const ServiceName = "fake-api"

// StatusResponse — ответ /status.
type StatusResponse struct {
	Service     string `json:"service"`
	Environment string `json:"environment"`
}

// HealthResponse — ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// RegisterStatusRoutes регистрирует /status и /health.
func RegisterStatusRoutes(mux *http.ServeMux, d Deps) {
	mux.HandleFunc("GET /status", withError(d.Logger, handleStatus(d.Environment)))
	mux.HandleFunc("GET /health", withError(d.Logger, handleHealth))
}

func handleStatus(env string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		return writeJSON(w, http.StatusOK, StatusResponse{
			Service:     ServiceName,
			Environment: env,
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
