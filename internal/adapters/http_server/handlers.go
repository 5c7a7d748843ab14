package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/app"
	"github.com/landaireal/landai-rent/internal/contract"
	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/schema"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
	// AdminSecret, when set, guards properties.create.
	AdminSecret string
	// InquiryLimiter, when set, throttles inquiries.create per client.
	InquiryLimiter *RateLimiter
}

// handlerFunc returns the faults it does not answer itself.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// errorBoundary turns an unanswered fault into a logged, opaque 500.
func errorBoundary(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			log.Error().Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request failed")
			writeJSON(w, http.StatusInternalServerError, contract.Message{Message: "Internal Server Error"})
		}
	}
}

// MountHandlers registers every contract route plus the ops endpoints.
func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	byName := map[string]handlerFunc{
		contract.PropertiesList.Name:   h.listProperties,
		contract.PropertiesGet.Name:    h.getProperty,
		contract.PropertiesCreate.Name: h.createProperty,
		contract.InquiriesCreate.Name:  h.createInquiry,
	}
	for _, rt := range contract.All() {
		hf, ok := byName[rt.Name]
		if !ok {
			panic(fmt.Sprintf("httpserver: no handler for route %s", rt.Name))
		}
		s.mux.With(h.guards(rt)...).Method(rt.Method, contract.RouterPattern(rt.Path), errorBoundary(hf))
	}
}

func (h *Handlers) guards(rt contract.Route) []func(http.Handler) http.Handler {
	switch {
	case rt.Name == contract.PropertiesCreate.Name && h.AdminSecret != "":
		return []func(http.Handler) http.Handler{RequireAdmin(h.AdminSecret)}
	case rt.Name == contract.InquiriesCreate.Name && h.InquiryLimiter != nil:
		return []func(http.Handler) http.Handler{h.InquiryLimiter.Middleware}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("marshal response: %w", err)
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func etagMatches(header, etag string) bool {
	for _, c := range strings.Split(header, ",") {
		if c = strings.TrimSpace(c); c == etag || c == "*" {
			return true
		}
	}
	return false
}

// writeCachable answers a GET with an ETag, or 304 when the client has it.
func writeCachable(w http.ResponseWriter, r *http.Request, v any) error {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		return err
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
	return nil
}

func writeValidation(w http.ResponseWriter, ve *schema.ValidationError) {
	writeJSON(w, http.StatusBadRequest, contract.ValidationError{Message: ve.Message, Field: ve.Field})
}

// readBody caps the body size; ok=false means the response is already written.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, contract.Message{Message: "Request body too large"})
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read body: %w", err)
	}
	return body, true, nil
}

func parseFilter(r *http.Request) (domain.PropertyFilter, error) {
	q := r.URL.Query()
	f := domain.PropertyFilter{
		Q:        strings.TrimSpace(q.Get("q")),
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Location: q.Get("location"),
	}
	if v := q.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, &schema.ValidationError{Field: "featured", Message: "Expected boolean, received string"}
		}
		f.Featured = &b
	}
	return f, nil
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) error {
	f, err := parseFilter(r)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			writeValidation(w, ve)
			return nil
		}
		return err
	}
	out, err := h.Q.ListProperties(r.Context(), f)
	if err != nil {
		return err
	}
	return writeCachable(w, r, out)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) error {
	// a non-numeric id can't match any record, so it is a plain miss
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, contract.Message{Message: "Property not found"})
		return nil
	}
	p, ok, err := h.Q.GetProperty(r.Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, contract.Message{Message: "Property not found"})
		return nil
	}
	return writeCachable(w, r, p)
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) error {
	body, ok, err := readBody(w, r)
	if !ok {
		return err
	}
	in, err := schema.DecodePropertyInput(body)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			writeValidation(w, ve)
			return nil
		}
		return err
	}
	p, err := h.C.CreateProperty(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, p)
	return nil
}

func (h *Handlers) createInquiry(w http.ResponseWriter, r *http.Request) error {
	body, ok, err := readBody(w, r)
	if !ok {
		return err
	}
	in, err := schema.DecodeInquiryInput(body)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			writeValidation(w, ve)
			return nil
		}
		return err
	}
	q, err := h.C.CreateInquiry(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, q)
	return nil
}
