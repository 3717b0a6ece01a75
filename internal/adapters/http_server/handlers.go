package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"concierge/internal/app"
	"concierge/internal/domain"
)

const maxBodyBytes = 1 << 20

// Planner is the slice of app.PlanService the handlers need.
type Planner interface {
	CreatePlan(ctx context.Context, req domain.TripRequest) (app.PlanEnvelope, error)
	GetPlan(ctx context.Context, id string) (app.StoredPlan, error)
}

type Handlers struct {
	Plans Planner
	// Render turns a stored plan into a PDF. Nil disables the /pdf route.
	Render func(app.StoredPlan) ([]byte, error)
	// MaxTripDays rejects longer bookings before they reach Plans.
	MaxTripDays int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1/plans", func(r chi.Router) {
		if n := s.opts.PlanRatePerMin; n > 0 {
			r.With(httprate.LimitByIP(n, time.Minute)).Post("/", h.createPlan)
		} else {
			r.Post("/", h.createPlan)
		}
		r.Get("/{id}", h.getPlan)
		if h.Render != nil {
			r.Get("/{id}/pdf", h.getPlanPDF)
		}
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "plan not found")
	default:
		writeProblem(w, http.StatusInternalServerError, "Plan Failed", err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

func (h *Handlers) createPlan(w http.ResponseWriter, r *http.Request) {
	var in planRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be a JSON plan request")
		return
	}
	req, err := in.toDomain(h.MaxTripDays)
	if err != nil {
		writeError(w, err)
		return
	}

	env, err := h.Plans.CreatePlan(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("location", req.Booking.Location).Msg("plan request failed")
		writeError(w, err)
		return
	}
	body, err := json.Marshal(env)
	if err != nil {
		writeError(w, err)
		return
	}
	if env.RunID != "" {
		w.Header().Set("Location", "/v1/plans/"+env.RunID)
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) getPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.Plans.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	etag, body, err := calcETagAndBody(app.PlanEnvelope{RunID: p.Run.ID, Output: p.Output})
	if err != nil {
		writeError(w, err)
		return
	}
	// stored runs never change, so a matching tag is always current
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) getPlanPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Plans.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := h.Render(p)
	if err != nil {
		log.Error().Err(err).Str("run_id", id).Msg("render plan pdf")
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="plan-`+id+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Error().Err(err).Msg("write pdf body failed")
	}
}
