package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbms-project/mbms-gateway/pkg/middleware"
	"github.com/mbms-project/mbms-gateway/pkg/response"
	"github.com/mbms-project/mbms-gateway/pkg/validate"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints. Login and register are
// anonymous; logout needs a live session.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.With(auth).Post("/logout", h.Logout)

	return r
}

// Login handles POST /users/login
// @Summary      Log in
// @Description  Exchange credentials for the user record and a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	u, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid credentials. Please try again.")
			return
		}
		response.BadGateway(w, "Failed to log in. Please try again later.")
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{User: u.ToResponse(), Token: token})
}

// Register handles POST /users/register
// @Summary      Register
// @Description  Create a new account in the bookkeeping store
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	u, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		response.BadGateway(w, "Failed to register. Please try again later.")
		return
	}

	response.JSON(w, http.StatusCreated, &AuthResponse{User: u.ToResponse(), Token: token})
}

// Logout handles POST /users/logout
// @Summary      Log out
// @Description  Drop the gateway session for the caller's token
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /users/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		response.Unauthorized(w, "Authorization header required")
		return
	}

	h.service.Logout(token)
	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
