package api

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var errorPageTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Status}} {{.Title}}</title></head>
<body>
<h1>{{.Message}}</h1>
<h2>{{.Status}}</h2>
{{if .Detail}}<pre>{{.Detail}}</pre>
{{end}}<p>Reference: {{.Reference}}</p>
</body>
</html>
`))

type errorPageData struct {
	Status    int
	Title     string
	Message   string
	Detail    string
	Reference string
}

// ErrorPages renders the generic HTML error page for unmatched routes and
// unexpected failures. Detail is only shown in development.
type ErrorPages struct {
	development bool
}

// NewErrorPages creates an error page renderer
func NewErrorPages(development bool) *ErrorPages {
	return &ErrorPages{development: development}
}

// Render writes the error page with the given status. detail, typically a
// stack trace, is dropped outside development.
func (p *ErrorPages) Render(w http.ResponseWriter, r *http.Request, status int, err error, detail string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	reference := uuid.New().String()
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "status", status, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "reference", reference, "error", err)
	}

	data := errorPageData{
		Status:    status,
		Title:     http.StatusText(status),
		Message:   err.Error(),
		Reference: reference,
	}
	if p.development {
		data.Detail = detail
		if data.Detail == "" {
			data.Detail = fmt.Sprintf("%+v", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := errorPageTemplate.Execute(w, data); err != nil {
		slog.Error("Failed to render error page", "error", err)
	}
}

// NotFound renders a 404 page
func (p *ErrorPages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, http.StatusNotFound, nil, "")
}

// Recoverer turns a panic into a 500 error page, like middleware.Recoverer
func (p *ErrorPages) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			err, ok := rvr.(error)
			if !ok {
				err = fmt.Errorf("%v", rvr)
			}
			status := http.StatusInternalServerError
			var statusErr interface{ StatusCode() int }
			if errors.As(err, &statusErr) {
				status = statusErr.StatusCode()
			}
			p.Render(w, r, status, err, string(debug.Stack()))
		}()

		next.ServeHTTP(w, r)
	})
}
