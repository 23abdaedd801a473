package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/core/services"
)

func newTestServer(t *testing.T, configure ...func(*memory.ConfigStore)) *Server {
	t.Helper()

	partial := domain.Food{Name: "Mystery Stew", Slug: "mystery-stew"}
	store := memory.NewFoodStore(append(memory.SeedFoods(), partial)...)
	config := memory.NewConfigStore()
	for _, fn := range configure {
		fn(config)
	}

	server, err := NewServer(&Ports{
		Search:   services.NewSearchService(store, nil),
		Food:     services.NewFoodService(store, nil),
		Settings: services.NewSettingsService(config),
	})
	require.NoError(t, err)
	return server
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeSearch(t *testing.T, rec *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewServer_ValidatesPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)

	store := memory.NewSeededFoodStore()
	_, err = NewServer(&Ports{Search: services.NewSearchService(store, nil)})
	assert.ErrorIs(t, err, ErrMissingFoodService)
}

func TestSearchAPI_GroupsByCategory(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/search?q=raw")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeSearch(t, rec)
	assert.Equal(t, domain.SearchStatusHasResults, resp.Status)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "Fruit", resp.Groups[0].Heading)
	assert.Equal(t, "Vegetables", resp.Groups[1].Heading)
	assert.Equal(t, 4, resp.Count)
	assert.Empty(t, resp.Message)
}

func TestSearchAPI_Ungrouped(t *testing.T) {
	s := newTestServer(t)

	resp := decodeSearch(t, get(t, s, "/api/search?q=raw&group=false"))

	require.Len(t, resp.Groups, 1)
	assert.Equal(t, domain.UngroupedHeading, resp.Groups[0].Heading)
}

func TestSearchAPI_ShortQuery(t *testing.T) {
	s := newTestServer(t)

	resp := decodeSearch(t, get(t, s, "/api/search?q=pi"))

	assert.Equal(t, domain.SearchStatusIdle, resp.Status)
	assert.Equal(t, "Type at least 3 characters to search.", resp.Message)
	assert.Empty(t, resp.Groups)

	empty := decodeSearch(t, get(t, s, "/api/search"))
	assert.Equal(t, domain.SearchStatusIdle, empty.Status)
	assert.Empty(t, empty.Message)
}

func TestSearchAPI_NoResults(t *testing.T) {
	s := newTestServer(t)

	resp := decodeSearch(t, get(t, s, "/api/search?q=xyz"))

	assert.Equal(t, domain.SearchStatusNoResults, resp.Status)
	assert.Equal(t, domain.NoResultsMessage, resp.Message)
}

func TestSearchAPI_RateLimited(t *testing.T) {
	s := newTestServer(t, func(c *memory.ConfigStore) {
		require.NoError(t, c.Set("web.rate_limit", 0.001))
		require.NoError(t, c.Set("web.burst", 1))
	})

	assert.Equal(t, http.StatusOK, get(t, s, "/api/search?q=pizza").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, s, "/api/search?q=pizza").Code)
}

func TestIndex_RendersResults(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/?q=piz")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/foods/pizza"`)
	assert.Contains(t, body, "Cheese pizza with tomato sauce")
	assert.Contains(t, body, domain.DefaultPlaceholder)
	assert.NotContains(t, body, `class="modal"`)
}

func TestIndex_ModalPresentation(t *testing.T) {
	s := newTestServer(t, func(c *memory.ConfigStore) {
		require.NoError(t, c.Set("search.presentation", "modal_dialog"))
	})

	body := get(t, s, "/?q=apple").Body.String()

	assert.Contains(t, body, `class="modal"`)
}

func TestFoodPage_DefaultServing(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/foods/pizza")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Serving Size 107g (107g = 1 slice)")
	assert.Contains(t, body, "Calories 285")
	assert.Contains(t, body, "Calories from Fat 96")
	assert.Contains(t, body, domain.LabelFootnote)
}

func TestFoodPage_ServingParams(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "serving input", query: "?serving=200", want: "Serving Size 200g"},
		{name: "serving clamps high", query: "?serving=5000", want: "Serving Size 1000g"},
		{name: "serving garbage", query: "?serving=abc", want: "Serving Size 1g"},
		{name: "serving leading digits", query: "?serving=150g", want: "Serving Size 150g"},
		{name: "slider clamps", query: "?slider=900", want: "Serving Size 500g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := get(t, s, "/foods/pizza"+tt.query).Body.String()
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestFoodPage_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/foods/kale")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Food not found")
}

func TestFoodPage_IncompleteProfile(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/foods/mystery-stew")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nutrition data unavailable")
}

func TestLabelAPI(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/foods/apple/label?serving=100")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp labelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 52, resp.Label.Nutrients.Calories)
	assert.Equal(t, "0.2g", resp.Label.Nutrients.Fats)
	require.Len(t, resp.Rows, 9)
	assert.Equal(t, "Sodium", resp.Rows[4].Name)
}

func TestLabelAPI_Errors(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/foods/kale/label").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, s, "/api/foods/mystery-stew/label").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/unknown").Code)
}

func TestUnknownPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/nowhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
}

type failingSearch struct{}

func (failingSearch) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, errors.New("catalog offline")
}

func (failingSearch) OpenSession(context.Context, domain.SessionConfig, ...driving.SessionOption) driving.SearchSession {
	return nil
}

func TestSearchAPI_FetchFailure(t *testing.T) {
	store := memory.NewSeededFoodStore()
	s, err := NewServer(&Ports{
		Search: failingSearch{},
		Food:   services.NewFoodService(store, nil),
	})
	require.NoError(t, err)

	rec := get(t, s, "/api/search?q=pizza")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeSearch(t, rec)
	assert.Equal(t, domain.SearchStatusError, resp.Status)
	assert.Equal(t, domain.FetchFailedMessage, resp.Message)
}

func TestSearchAPI_ConfiguredMinQueryLength(t *testing.T) {
	s := newTestServer(t, func(c *memory.ConfigStore) {
		require.NoError(t, c.Set("search.min_query_length", 2))
	})

	resp := decodeSearch(t, get(t, s, "/api/search?q=ap"))

	assert.Equal(t, 2, resp.MinQueryLength)
	assert.Equal(t, domain.SearchStatusHasResults, resp.Status)
	assert.Equal(t, 1, resp.Count)
}
