package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// Fixed plain-text responses
const (
	MessageUpdateNotSupported = "No support for update!"
	MessageContentNotFound    = "Content not found!"
)

// ContentHandler handles HTTP requests for the content collection
type ContentHandler struct {
	service tvcontent.Service
	pages   *ErrorPages
}

// NewContentHandler creates a new content handler.
// Unexpected failures are rendered through pages.
func NewContentHandler(service tvcontent.Service, pages *ErrorPages) *ContentHandler {
	if pages == nil {
		pages = NewErrorPages(false)
	}
	return &ContentHandler{
		service: service,
		pages:   pages,
	}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListContents)
	r.Post("/", h.CreateContent)
	r.Post("/all", h.ReplaceContents)
	r.Put("/{id}", h.UpdateContent)
	r.Delete("/{id}", h.DeleteContent)

	return r
}

// ListContents returns the whole document
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.ListContents(r.Context())
	if err != nil {
		slog.Error("Failed to read contents", "error", err)
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	render.JSON(w, r, doc)
}

// CreateContent appends one content item
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req tvcontent.CreateContentRequest
	if err := render.Decode(r, &req); err != nil {
		writeValidationError(w, r, tvcontent.NewDecodeError(err))
		return
	}

	doc, err := h.service.CreateContent(r.Context(), req)
	if err != nil {
		h.handleMutationError(w, r, "create", err)
		return
	}

	writeDocumentText(w, r, doc)
}

// ReplaceContents overwrites the whole collection
func (h *ContentHandler) ReplaceContents(w http.ResponseWriter, r *http.Request) {
	var req tvcontent.ReplaceContentsRequest
	if err := render.Decode(r, &req); err != nil {
		writeValidationError(w, r, tvcontent.NewDecodeError(err))
		return
	}

	doc, err := h.service.ReplaceContents(r.Context(), req)
	if err != nil {
		h.handleMutationError(w, r, "replace", err)
		return
	}

	writeDocumentText(w, r, doc)
}

// UpdateContent always refuses; items are replaced, never edited
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	slog.Info("Rejected content update", "content_id", chi.URLParam(r, "id"), "error", tvcontent.ErrUpdateNotSupported)
	render.Status(r, http.StatusBadRequest)
	render.PlainText(w, r, MessageUpdateNotSupported)
}

// DeleteContent removes the first item with the given id
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := tvcontent.ParseContentID(idStr)
	if err != nil {
		slog.Error("Invalid content ID", "content_id", idStr, "error", err)
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	doc, err := h.service.DeleteContent(r.Context(), id)
	switch {
	case err == nil:
		writeDocumentText(w, r, doc)
	case errors.Is(err, tvcontent.ErrContentNotFound):
		render.Status(r, http.StatusNotFound)
		render.PlainText(w, r, MessageContentNotFound)
	case tvcontent.IsStoreOp(err, tvcontent.OpRead), tvcontent.IsStoreOp(err, tvcontent.OpDecode):
		slog.Error("Failed to read contents", "content_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, err)
	default:
		h.handleMutationError(w, r, "delete", err)
	}
}

func (h *ContentHandler) handleMutationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var validationErr *tvcontent.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeValidationError(w, r, validationErr)
	case tvcontent.IsStoreOp(err, tvcontent.OpWrite), tvcontent.IsStoreOp(err, tvcontent.OpEncode):
		slog.Error("Failed to write contents", "op", op, "error", err)
		writeError(w, r, http.StatusBadRequest, err)
	default:
		h.pages.Render(w, r, http.StatusInternalServerError, err, "")
	}
}
