package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/mbms-project/mbms-gateway/pkg/middleware"
	"github.com/mbms-project/mbms-gateway/pkg/response"
	"github.com/mbms-project/mbms-gateway/pkg/validate"
)

// Handler handles HTTP requests for order operations
type Handler struct {
	service *Service
}

// NewHandler creates a new order handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for order endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/delivery/{id}", h.UpdateDelivery)
	r.Put("/transfer/{id}", h.UpdateTransfer)
	r.With(mw.RequireAdmin).Delete("/{id}", h.Delete)

	return r
}

// List handles GET /orders
// @Summary      List orders
// @Description  Get the caller's current view of the order ledger
// @Tags         orders
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]OrderResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /orders [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to fetch orders. Please try again later.")
		return
	}

	orderResponses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		orderResponses[i] = o.ToResponse()
	}

	response.JSON(w, http.StatusOK, orderResponses)
}

// Create handles POST /orders
// @Summary      Record an order
// @Description  Record an order placed on an e-commerce platform
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Order creation request"
// @Success      201 {object} response.APIResponse{data=OrderResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /orders [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
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
		response.BadGateway(w, "Failed to add order. Please try again.")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// UpdateDelivery handles PUT /orders/delivery/{id}
// @Summary      Update delivery status
// @Description  Move an order to a new delivery status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateDeliveryRequest true "Delivery update request"
// @Success      200 {object} response.APIResponse{data=OrderResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /orders/delivery/{id} [put]
func (h *Handler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	updated, err := h.service.UpdateDelivery(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrUnknownStatus) {
			response.BadRequest(w, err.Error())
			return
		}
		response.BadGateway(w, "Failed to update order status. Please try again.")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// UpdateTransfer handles PUT /orders/transfer/{id}
// @Summary      Update transfer flag
// @Description  Mark whether realized profit on an order has been moved out
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateTransferRequest true "Transfer update request"
// @Success      200 {object} response.APIResponse{data=OrderResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /orders/transfer/{id} [put]
func (h *Handler) UpdateTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	updated, err := h.service.UpdateTransfer(r.Context(), id, &req)
	if err != nil {
		response.BadGateway(w, "Failed to update order transfer status. Please try again.")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// Delete handles DELETE /orders/{id}
// @Summary      Delete an order
// @Description  Hard-delete an order regardless of status (admin only)
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /orders/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.BadGateway(w, "Failed to delete order. Please try again.")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
