package objects

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/internal/routes"
	"github.com/JaimeStill/live-gallery/pkg/handlers"
	"github.com/JaimeStill/live-gallery/pkg/pagination"
)

// formOverhead is the slack allowed beyond the upload limit for
// multipart boundaries and text fields.
const formOverhead = 64 * 1024

// Handler provides HTTP endpoints for object operations. Reads are
// public; mutations require authentication.
type Handler struct {
	sys           System
	guard         *middleware.Guard
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

func NewHandler(sys System, guard *middleware.Guard, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		guard:         guard,
		logger:        logger.With("handler", "objects"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the object endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/objects",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.guard.Require(h.Create)},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.guard.Require(h.Delete)},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Objects retrieved successfully", result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errors.New("Invalid object id"))
		return
	}

	obj, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Object retrieved successfully", obj)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity(r)
	if !ok {
		handlers.RespondError(w, r, h.logger, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		return
	}

	cmd, err := h.parseCreate(w, r)
	if err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, err)
		return
	}

	if errs := cmd.Validate(h.maxUploadSize); errs != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errs)
		return
	}

	obj, err := h.sys.Create(r.Context(), owner, *cmd)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, "Object created successfully", obj)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity(r)
	if !ok {
		handlers.RespondError(w, r, h.logger, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, http.StatusBadRequest, errors.New("Invalid object id"))
		return
	}

	if err := h.sys.Delete(r.Context(), owner, id); err != nil {
		handlers.RespondError(w, r, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, "Object deleted successfully", DeleteResult{
		ID:      id,
		Message: "Object deleted successfully",
	})
}

// parseCreate reads the multipart create form. A missing image is not
// an error here so validation can report it as a field failure. The
// body is capped slightly above the upload limit so an oversized
// request is cut off at the wire instead of buffered in full.
func (h *Handler) parseCreate(w http.ResponseWriter, r *http.Request) (*CreateCommand, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, errors.New("Invalid multipart form")
	}

	cmd := &CreateCommand{
		Title: r.FormValue("title"),
	}

	if desc := r.FormValue("description"); desc != "" {
		cmd.Description = &desc
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return cmd, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("Unable to read uploaded file")
	}

	cmd.Filename = header.Filename
	cmd.ContentType = header.Header.Get("Content-Type")
	cmd.Size = header.Size
	cmd.Data = data

	return cmd, nil
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
