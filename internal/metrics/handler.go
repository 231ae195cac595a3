package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/mbms-project/mbms-gateway/pkg/middleware"
	"github.com/mbms-project/mbms-gateway/pkg/response"
)

// Handler handles HTTP requests for dashboard metrics
type Handler struct {
	service *Service
}

// NewHandler creates a new metrics handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for metrics endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Snapshot)

	return r
}

// Snapshot handles GET /metrics
// @Summary      Dashboard snapshot
// @Description  Derive all dashboard figures for the caller, scoped by role
// @Tags         metrics
// @Produce      json
// @Success      200 {object} response.APIResponse{data=SnapshotResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /metrics [get]
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	viewer, ok := mw.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authorization header required")
		return
	}

	snapshot, err := h.service.Snapshot(r.Context(), viewer)
	if err != nil {
		response.BadGateway(w, "Failed to compute dashboard metrics. Please try again later.")
		return
	}

	response.JSON(w, http.StatusOK, snapshot.ToResponse())
}
