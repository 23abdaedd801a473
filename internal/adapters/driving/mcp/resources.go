package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for nutri resources.
	uriScheme = "nutri://"
	mimeJSON  = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "foods",
		Name:        "foods",
		Description: "All foods in the catalog",
		MIMEType:    mimeJSON,
	}, s.handleFoodsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "foods/{slug}",
		Name:        "food",
		Description: "One food with its nutrition label at the food's own serving",
		MIMEType:    mimeJSON,
	}, s.handleFoodResource)
}

// handleFoodsResource returns the catalog listing.
func (s *Server) handleFoodsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	foods, err := s.ports.Food.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing foods: %w", err)
	}

	type foodInfo struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		Category string `json:"category"`
		URI      string `json:"uri"`
	}

	infos := make([]foodInfo, len(foods))
	for i := range foods {
		category := domain.OtherCategory
		if foods[i].Category != nil && *foods[i].Category != "" {
			category = *foods[i].Category
		}
		infos[i] = foodInfo{
			Slug:     foods[i].Slug,
			Name:     foods[i].Name,
			Category: category,
			URI:      uriScheme + "foods/" + foods[i].Slug,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleFoodResource returns one food with its label.
func (s *Server) handleFoodResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractFoodSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	food, err := s.ports.Food.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting food: %w", err)
	}

	type foodDetail struct {
		Slug        string                 `json:"slug"`
		Name        string                 `json:"name"`
		Description *string                `json:"description,omitempty"`
		Category    *string                `json:"category,omitempty"`
		ImageURL    string                 `json:"imageUrl,omitempty"`
		Label       *domain.NutritionLabel `json:"label,omitempty"`
		LabelError  string                 `json:"labelError,omitempty"`
	}

	detail := foodDetail{
		Slug:        food.Slug,
		Name:        food.Name,
		Description: food.Description,
		Category:    food.Category,
		ImageURL:    food.ImageURL,
	}
	label, err := s.ports.Food.Label(ctx, slug, 0)
	if err != nil {
		detail.LabelError = err.Error()
	} else {
		detail.Label = &label
	}

	return jsonResult(req.Params.URI, detail)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractFoodSlug extracts the slug from a URI like nutri://foods/{slug}.
func extractFoodSlug(uri string) string {
	const prefix = uriScheme + "foods/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	slug := strings.TrimPrefix(uri, prefix)
	if strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
