package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

const defaultLimit = 10

// SearchInput is the input schema for the search_foods tool.
type SearchInput struct {
	Query           string `json:"query" jsonschema:"food name, description or category to look for (at least 3 characters)"`
	Limit           int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	GroupByCategory bool   `json:"group_by_category,omitempty" jsonschema:"group the results by food category"`
}

// SearchOutput is the output schema for the search_foods tool.
type SearchOutput struct {
	Results []domain.SearchResult `json:"results"`
	Groups  []domain.ResultGroup  `json:"groups,omitempty"`
	Count   int                   `json:"count"`
	Message string                `json:"message,omitempty"`
}

// LabelInput is the input schema for the nutrition_label tool.
type LabelInput struct {
	Slug     string `json:"slug" jsonschema:"slug of the food, as returned by search_foods (target /foods/<slug>)"`
	ServingG int    `json:"serving_g,omitempty" jsonschema:"serving size in grams, 1 to 1000 (default: the food's own serving)"`
}

// LabelOutput is the output schema for the nutrition_label tool.
type LabelOutput struct {
	Label       domain.NutritionLabel `json:"label"`
	ServingNote string                `json:"serving_note,omitempty"`
	Rows        []LabelRowOutput      `json:"rows"`
}

// LabelRowOutput is one line of the label body.
type LabelRowOutput struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	DailyValue string `json:"daily_value,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_foods",
		Description: "Search the food catalog by name, description or category",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nutrition_label",
		Description: "Nutrition facts label of a food scaled to a serving size in grams",
	}, s.handleLabel)
}

// handleSearch handles the search_foods tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{Limit: limit, MatchCategory: true, MinQueryLength: domain.MinQueryLength}
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			opts.MatchCategory = settings.Search.MatchCategory
			opts.MinQueryLength = settings.Search.SessionConfig().Normalised().MinQueryLength
		}
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	output := SearchOutput{
		Results: results,
		Count:   len(results),
	}
	if input.GroupByCategory {
		output.Groups = domain.GroupResults(results, true)
	}
	switch {
	case len([]rune(input.Query)) < opts.MinQueryLength:
		output.Message = fmt.Sprintf("Type at least %d characters to search.", opts.MinQueryLength)
	case len(results) == 0:
		output.Message = domain.NoResultsMessage
	}

	return nil, output, nil
}

// handleLabel handles the nutrition_label tool invocation.
func (s *Server) handleLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LabelInput,
) (*mcp.CallToolResult, LabelOutput, error) {
	if input.ServingG < 0 {
		return nil, LabelOutput{}, fmt.Errorf("serving_g must be positive: %w", domain.ErrInvalidInput)
	}

	slug := input.Slug
	if parsed, ok := domain.ParseFoodRoute(slug); ok {
		slug = parsed
	}

	label, err := s.ports.Food.Label(ctx, slug, input.ServingG)
	if err != nil {
		return nil, LabelOutput{}, err
	}

	rows := label.Rows()
	output := LabelOutput{
		Label:       label,
		ServingNote: label.ServingNote(),
		Rows:        make([]LabelRowOutput, len(rows)),
	}
	for i, row := range rows {
		output.Rows[i] = LabelRowOutput{Name: row.Name, Amount: row.Amount, DailyValue: row.DailyValue}
	}

	return nil, output, nil
}
