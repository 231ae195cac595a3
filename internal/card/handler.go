package card

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbms-project/mbms-gateway/pkg/response"
	"github.com/mbms-project/mbms-gateway/pkg/validate"
)

// Handler handles HTTP requests for card operations
type Handler struct {
	service *Service
}

// NewHandler creates a new card handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for card endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	return r
}

// List handles GET /cards
// @Summary      List cards
// @Description  Get the card registry
// @Tags         cards
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]CardResponse}
// @Failure      502 {object} response.APIResponse
// @Router       /cards [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.List(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to fetch cards. Please try again later.")
		return
	}

	cardResponses := make([]*CardResponse, len(cards))
	for i, c := range cards {
		cardResponses[i] = c.ToResponse()
	}

	response.JSON(w, http.StatusOK, cardResponses)
}

// Create handles POST /cards
// @Summary      Register a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body CreateCardRequest true "Card creation request"
// @Success      201 {object} response.APIResponse{data=CardResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /cards [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
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
		response.BadGateway(w, "Failed to add card. Please try again.")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}
