// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental_dashboard/internal/app"
	"rental_dashboard/internal/domain"
)

type Handlers struct{ Q *app.DashboardService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/options", h.getOptions)
	s.mux.Get("/v1/dashboard", h.getDashboard)
	s.mux.Get("/v1/figures/{name}", h.getFigure)
	s.mux.Get("/v1/preview", h.getPreview)
}

// parseSelection reads the repeated room_type/time_period params and the
// single satisfaction param. Absent params leave their dimension unfiltered.
func parseSelection(r *http.Request) domain.FilterSelection {
	q := r.URL.Query()
	return domain.FilterSelection{
		RoomTypes:    q["room_type"],
		TimePeriods:  q["time_period"],
		Satisfaction: q.Get("satisfaction"),
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with a weak ETag, short-circuiting to 304
// when the client already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getOptions(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Q.Options())
}

func (h *Handlers) getDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.Q.Dashboard(r.Context(), parseSelection(r))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Dashboard Failed", err.Error())
		return
	}
	writeCached(w, r, view)
}

func (h *Handlers) getFigure(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	fig, err := h.Q.FigureByName(r.Context(), name, parseSelection(r))
	if errors.Is(err, app.ErrUnknownFigure) {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown figure "+name)
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Figure Failed", err.Error())
		return
	}
	writeCached(w, r, fig)
}

func (h *Handlers) getPreview(w http.ResponseWriter, r *http.Request) {
	page := 1
	if ps := r.URL.Query().Get("page"); ps != "" {
		p, err := strconv.Atoi(ps)
		if err != nil || p < 1 {
			writeProblem(w, http.StatusBadRequest, "Invalid page", "page must be a positive integer")
			return
		}
		page = p
	}
	writeCached(w, r, h.Q.Preview(page))
}
