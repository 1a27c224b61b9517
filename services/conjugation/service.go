package conjugation

import (
	"coniugo-backend/lib/scrapers/wordreference"
	"coniugo-backend/lib/scrapestore"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/conjugation")

type Service struct {
	scraper *wordreference.Client
	store   *scrapestore.Store
	apiKey  string
}

type Options struct {
	Scraper *wordreference.Client
	// ApiKey gates /conjugate via the X-API-Key header. An empty key
	// rejects every request, matching the original deployment where
	// the service is unusable until the key is configured.
	ApiKey string
	// Store, when set, records every successful scrape.
	Store *scrapestore.Store
}

func NewService(opts Options) Service {
	return Service{
		scraper: opts.Scraper,
		store:   opts.Store,
		apiKey:  opts.ApiKey,
	}
}

func (s Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/conjugate", s.handleConjugate)
	return r
}

// Request echoes back what the caller asked for.
type Request struct {
	Verb    string   `json:"v"`
	Full    bool     `json:"full"`
	Moods   []string `json:"moods,omitempty"`
	Tenses  []string `json:"tenses,omitempty"`
	Persons []string `json:"persons,omitempty"`
}

type Response struct {
	Success   bool                  `json:"success"`
	Requested *Request              `json:"requested,omitempty"`
	Note      string                `json:"note,omitempty"`
	Error     string                `json:"error,omitempty"`
	Data      *wordreference.Result `json:"data,omitempty"`
}

func writeJson(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func (s Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true}`))
}

func csvList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s Service) handleConjugate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Conjugate")
	defer span.End()

	if s.apiKey == "" || r.Header.Get("X-API-Key") != s.apiKey {
		span.SetStatus(codes.Error, "unauthorized")
		writeJson(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Invalid or missing X-API-Key",
		})
		return
	}

	query := r.URL.Query()
	verb := strings.TrimSpace(query.Get("v"))
	if verb == "" {
		writeJson(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Query parameter 'v' is required",
		})
		return
	}

	full := true
	if rawFull := query.Get("full"); rawFull != "" {
		parsed, err := strconv.ParseBool(rawFull)
		if err != nil {
			writeJson(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Query parameter 'full' must be a boolean",
			})
			return
		}
		full = parsed
	}

	req := &Request{
		Verb:    verb,
		Full:    full,
		Moods:   csvList(query.Get("moods")),
		Tenses:  csvList(query.Get("tenses")),
		Persons: csvList(query.Get("persons")),
	}
	span.SetAttributes(attribute.String("verb", verb))

	result, _, err := s.scraper.Scrape(ctx, verb)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		writeJson(w, http.StatusOK, Response{
			Success:   false,
			Requested: req,
			Error:     err.Error(),
		})
		return
	}

	if result.Conjugations.Empty() {
		writeJson(w, http.StatusOK, Response{
			Success:   false,
			Requested: req,
			Error:     "No conjugations found",
		})
		return
	}

	if s.store != nil {
		err := s.store.Push(ctx, result, time.Now())
		if err != nil {
			slog.WarnContext(ctx, "failed to record scrape", "verb", verb, "err", err)
		}
	}

	narrowed := Narrow(result, req.Moods, req.Tenses, req.Persons, full)
	response := Response{
		Success:   true,
		Requested: req,
		Data:      &narrowed,
	}
	if narrowed.Conjugations.Empty() {
		response.Note = "Scrape OK, but filters returned no items."
	}
	writeJson(w, http.StatusOK, response)
}
