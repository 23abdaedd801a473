package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

type apiError struct {
	Error string `json:"error"`
}

// searchResponse is the body of GET /api/search.
type searchResponse struct {
	Query          string               `json:"query"`
	Status         domain.SearchStatus  `json:"status"`
	Message        string               `json:"message,omitempty"`
	MinQueryLength int                  `json:"minQueryLength"`
	Groups         []domain.ResultGroup `json:"groups"`
	Count          int                  `json:"count"`
}

// runSearch performs one committed search and describes it the way the
// search box would display it.
func (s *Server) runSearch(ctx context.Context, query string, group bool) searchResponse {
	cfg := s.search.SessionConfig().Normalised()
	state := domain.SessionState{
		RawQuery:       query,
		DebouncedQuery: query,
		MinQueryLength: cfg.MinQueryLength,
		Status:         domain.SearchStatusIdle,
	}

	if len([]rune(query)) < cfg.MinQueryLength {
		state.NeedsMoreInput = query != ""
	} else {
		state.HasSearched = true
		results, err := s.ports.Search.Search(ctx, query, domain.SearchOptions{
			Limit:          s.search.Limit,
			MatchCategory:  cfg.MatchCategory,
			MinQueryLength: cfg.MinQueryLength,
		})
		switch {
		case err != nil:
			logger.Warn("search %q: %v", query, err)
			state.Status = domain.SearchStatusError
			state.ErrorMessage = domain.FetchFailedMessage
		case len(results) == 0:
			state.Status = domain.SearchStatusNoResults
		default:
			state.Status = domain.SearchStatusHasResults
			state.Groups = domain.GroupResults(results, group)
			state.Results = results
		}
	}

	groups := state.Groups
	if groups == nil {
		groups = []domain.ResultGroup{}
	}
	return searchResponse{
		Query:          query,
		Status:         state.Status,
		Message:        state.EmptyMessage(),
		MinQueryLength: state.MinQueryLength,
		Groups:         groups,
		Count:          len(state.Results),
	}
}

// groupParam reads ?group=, falling back to the configured default.
func (s *Server) groupParam(r *http.Request) bool {
	if v := r.URL.Query().Get("group"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return s.search.GroupByCategory
}

func (s *Server) handleSearchAPI(w http.ResponseWriter, r *http.Request) {
	resp := s.runSearch(r.Context(), r.URL.Query().Get("q"), s.groupParam(r))
	status := http.StatusOK
	if resp.Status == domain.SearchStatusError {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

type indexPage struct {
	Title       string
	Placeholder string
	Query       string
	Modal       bool
	ShowImages  bool
	Search      *searchResponse
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.search.SessionConfig().Normalised()
	page := indexPage{
		Title:       "Food search",
		Placeholder: cfg.Placeholder,
		Modal:       cfg.Presentation == domain.PresentationModalDialog,
		ShowImages:  cfg.ResultMedia == domain.ResultMediaImage,
	}
	if q, ok := r.URL.Query()["q"]; ok {
		page.Query = q[0]
		resp := s.runSearch(r.Context(), page.Query, s.groupParam(r))
		page.Search = &resp
	}
	s.render(w, http.StatusOK, "index.html", page)
}

type foodPage struct {
	Title       string
	Placeholder string
	Food        *domain.Food
	Label       domain.NutritionLabel
	Rows        []domain.LabelRow
	ServingNote string
	Footnote    string
	Serving     int
	SliderValue int
	MinServing  int
	MaxServing  int
	MaxSlider   int
}

// servingFor resolves the serving of a food page request. ?slider= wins
// over ?serving=; without either the food's own serving is used.
func servingFor(food *domain.Food, r *http.Request) int {
	adj := domain.NewServingAdjustment(food)
	q := r.URL.Query()
	if v := q.Get("slider"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			adj.SetFromSlider(n)
			return adj.Grams()
		}
	}
	if v, ok := q["serving"]; ok {
		adj.ParseInput(v[0])
	}
	return adj.Grams()
}

func (s *Server) handleFoodPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	food, err := s.ports.Food.Get(r.Context(), slug)
	if err != nil {
		s.renderError(w, err)
		return
	}

	serving := servingFor(food, r)
	label, err := s.ports.Food.Label(r.Context(), slug, serving)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.render(w, http.StatusOK, "food.html", foodPage{
		Title:       food.Name,
		Placeholder: s.search.SessionConfig().Normalised().Placeholder,
		Food:        food,
		Label:       label,
		Rows:        label.Rows(),
		ServingNote: label.ServingNote(),
		Footnote:    domain.LabelFootnote,
		Serving:     serving,
		SliderValue: min(serving, domain.MaxSliderServingG),
		MinServing:  domain.MinServingG,
		MaxServing:  domain.MaxServingG,
		MaxSlider:   domain.MaxSliderServingG,
	})
}

type labelResponse struct {
	Label       domain.NutritionLabel `json:"label"`
	ServingNote string                `json:"servingNote,omitempty"`
	Rows        []domain.LabelRow     `json:"rows"`
	Footnote    string                `json:"footnote"`
}

func (s *Server) handleLabelAPI(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	food, err := s.ports.Food.Get(r.Context(), slug)
	if err != nil {
		writeJSON(w, statusFor(err), apiError{Error: err.Error()})
		return
	}

	label, err := s.ports.Food.Label(r.Context(), slug, servingFor(food, r))
	if err != nil {
		writeJSON(w, statusFor(err), apiError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, labelResponse{
		Label:       label,
		ServingNote: label.ServingNote(),
		Rows:        label.Rows(),
		Footnote:    domain.LabelFootnote,
	})
}

type errorPage struct {
	Title       string
	Placeholder string
	Heading     string
	Message     string
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found"})
		return
	}
	s.renderError(w, domain.ErrNotFound)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	page := errorPage{
		Title:       "Not found",
		Placeholder: s.search.SessionConfig().Normalised().Placeholder,
		Heading:     "Food not found",
		Message:     "The page you are looking for does not exist. Try searching instead.",
	}
	switch status {
	case http.StatusNotFound:
	case http.StatusUnprocessableEntity:
		page.Title = "Incomplete food"
		page.Heading = "Nutrition data unavailable"
		page.Message = "This food is missing nutrient values, so no label can be shown."
	default:
		logger.Warn("request failed: %v", err)
		page.Title = "Error"
		page.Heading = "Something went wrong"
		page.Message = "Please try again."
	}
	s.render(w, status, "error.html", page)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncompleteProfile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("rendering %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}
