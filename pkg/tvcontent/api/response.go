package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// ErrorResponse is the body of non-validation error responses
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err *tvcontent.ValidationError) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, err)
}

// writeDocumentText responds with the persisted text of doc encoded as a
// JSON string, so clients receive exactly what was written.
func writeDocumentText(w http.ResponseWriter, r *http.Request, doc *tvcontent.Document) {
	data, err := tvcontent.Marshal(doc)
	if err != nil {
		slog.Error("Failed to encode contents", "error", err)
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, string(data))
}
