package rest

import (
	"log"
	"net/http"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Studio // Dependency on the Core Service
	router *http.ServeMux   // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Studio) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface. Every response carries
// permissive CORS headers and preflight requests are answered directly.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /{$}", h.Root)
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("POST /analyze", h.Analyze)
	h.router.HandleFunc("POST /generate-bgm", h.GenerateBGM)
	h.router.HandleFunc("GET /download-bgm/{id}", h.DownloadBGM)
	h.router.HandleFunc("GET /test-bgm", h.TestBGM)
}

// Root identifies the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "VocalMaster AI Backend is running!"})
}

// HealthCheck verifies the API is running and its artifact store answers.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ready(r.Context()); err != nil {
		log.Printf("WARN health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "message": "Artifact store is unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "VocalMaster is live 🎶"})
}
