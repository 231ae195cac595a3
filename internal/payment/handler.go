package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbms-project/mbms-gateway/pkg/response"
	"github.com/mbms-project/mbms-gateway/pkg/validate"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints. Reads stay open to
// anonymous callers; mutations need a session.
func (h *Handler) Routes(auth, optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.List)
		r.Get("/last", h.Last)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// List handles GET /payments
// @Summary      List payments
// @Description  Get the full payment ledger
// @Tags         payments
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /payments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.List(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to fetch payments. Please try again later.")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, paymentResponses)
}

// Last handles GET /payments/last
// @Summary      Get the most recent payment
// @Tags         payments
// @Produce      json
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /payments/last [get]
func (h *Handler) Last(w http.ResponseWriter, r *http.Request) {
	last, err := h.service.Last(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to fetch payments. Please try again later.")
		return
	}
	if last == nil {
		response.JSON(w, http.StatusOK, nil)
		return
	}

	response.JSON(w, http.StatusOK, last.ToResponse())
}

// Create handles POST /payments
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.BadGateway(w, "Failed to add payment. Please try again.")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// Update handles PUT /payments/{id}
// @Summary      Edit a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        request body UpdatePaymentRequest true "Payment update request"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.BadGateway(w, "Failed to update payment. Please try again.")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// Delete handles DELETE /payments/{id}
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} response.APIResponse
// @Router       /payments/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.BadGateway(w, "Failed to delete payment. Please try again.")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}
