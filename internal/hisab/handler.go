package hisab

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/mbms-project/mbms-gateway/pkg/middleware"
	"github.com/mbms-project/mbms-gateway/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new hisab handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for hisab endpoints. Everyone with a session
// can read; only admins run the settlement lifecycle.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Post("/prepare", h.Prepare)
		r.Post("/", h.Submit)
		r.Post("/{id}/revert", h.Revert)
		r.Post("/{id}/pay", h.MarkPaid)
	})

	return r
}

// List handles GET /hisabs
// @Summary      List hisabs
// @Description  Get all settlement batches
// @Tags         hisabs
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]HisabResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /hisabs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	hisabs, err := h.service.List(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to fetch hisabs. Please try again later.")
		return
	}

	hisabResponses := make([]*HisabResponse, len(hisabs))
	for i, hb := range hisabs {
		hisabResponses[i] = hb.ToResponse()
	}

	response.JSON(w, http.StatusOK, hisabResponses)
}

// Prepare handles POST /hisabs/prepare
// @Summary      Preview a settlement batch
// @Description  Size the batch from the current delivered set; persists nothing
// @Tags         hisabs
// @Produce      json
// @Success      200 {object} response.APIResponse{data=PrepareResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /hisabs/prepare [post]
func (h *Handler) Prepare(w http.ResponseWriter, r *http.Request) {
	prep, err := h.service.Prepare(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to prepare hisab. Please try again later.")
		return
	}

	response.JSON(w, http.StatusOK, prep.ToResponse())
}

// Submit handles POST /hisabs
// @Summary      Submit a settlement batch
// @Description  Create the hisab and move captured orders to Payment Pending
// @Tags         hisabs
// @Produce      json
// @Success      201 {object} response.APIResponse{data=HisabResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /hisabs [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.Submit(r.Context())
	if err != nil {
		if errors.Is(err, ErrPartialSequence) {
			response.BadGateway(w, "Hisab was created but some orders were not captured. Refresh to see the current state.")
			return
		}
		response.BadGateway(w, "Failed to create hisab. Please try again.")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// Revert handles POST /hisabs/{id}/revert
// @Summary      Revert a settlement batch
// @Description  Deactivate the hisab and put captured orders back to Delivered
// @Tags         hisabs
// @Produce      json
// @Param        id path string true "Hisab ID"
// @Success      200 {object} response.APIResponse{data=HisabResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /hisabs/{id}/revert [post]
func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updated, err := h.service.Revert(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to revert hisab. Please try again.",
			"Hisab was reverted but some orders were not reset. Refresh to see the current state.")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// MarkPaid handles POST /hisabs/{id}/pay
// @Summary      Mark a settlement batch paid
// @Description  Record payment and move captured orders to Money Received
// @Tags         hisabs
// @Produce      json
// @Param        id path string true "Hisab ID"
// @Success      200 {object} response.APIResponse{data=HisabResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /hisabs/{id}/pay [post]
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updated, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to update hisab. Please try again.",
			"Hisab was marked paid but some orders were not updated. Refresh to see the current state.")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

func (h *Handler) writeLifecycleError(w http.ResponseWriter, err error, generic, partial string) {
	switch {
	case errors.Is(err, ErrHisabNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrNotActive):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrPartialSequence):
		response.BadGateway(w, partial)
	default:
		response.BadGateway(w, generic)
	}
}
