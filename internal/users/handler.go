package users

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/internal/routes"
	"github.com/JaimeStill/live-gallery/pkg/handlers"
)

// Handler provides HTTP endpoints for registration, login, and profile
// management.
type Handler struct {
	sys    System
	guard  *middleware.Guard
	logger *slog.Logger
}

func NewHandler(sys System, guard *middleware.Guard, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		guard:  guard,
		logger: logger.With("handler", "users"),
	}
}

// Routes returns the auth and profile route groups.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/auth",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/register", Handler: h.Register},
					{Method: "POST", Pattern: "/login", Handler: h.Login},
				},
			},
			{
				Prefix: "/users",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/profile", Handler: h.guard.Require(h.Profile)},
					{Method: "PATCH", Pattern: "/profile", Handler: h.guard.Require(h.UpdateProfile)},
				},
			},
		},
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, err)
		return
	}

	if errs := req.Validate(); errs != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errs)
		return
	}

	result, err := h.sys.Register(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, "User registered successfully", result)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, err)
		return
	}

	if errs := req.Validate(); errs != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errs)
		return
	}

	result, err := h.sys.Login(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Login successful", result)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		handlers.RespondError(w, r, h.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	user, err := h.sys.Profile(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Profile retrieved successfully", user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		handlers.RespondError(w, r, h.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, err)
		return
	}

	if errs := req.Validate(); errs != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errs)
		return
	}

	user, err := h.sys.UpdateProfile(r.Context(), id, req)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Profile updated successfully", user)
}

func identity(r *http.Request) (uuid.UUID, bool) {
	claims, ok := middleware.Identity(r)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
