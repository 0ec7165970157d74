// Package properties wraps the host listing endpoints.
package properties

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	validator "github.com/go-playground/validator/v10"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/models"
)

// Service manages the current host's property listings and searches
// the public catalog.
type Service struct {
	client   *api.Client
	validate *validator.Validate
}

// New creates the property service.
func New(client *api.Client) *Service {
	return &Service{
		client:   client,
		validate: validator.New(),
	}
}

// Mine lists every property owned by the signed-in host.
func (s *Service) Mine(ctx context.Context) ([]models.Property, error) {
	var out []models.Property
	if err := s.client.Get(ctx, "/properties/mine", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Get fetches a single listing.
func (s *Service) Get(ctx context.Context, id string) (*models.Property, error) {
	var out models.Property
	if err := s.client.Get(ctx, "/properties/"+id, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Create adds a new listing. New listings start unpublished.
func (s *Service) Create(ctx context.Context, req models.PropertyRequest) (*models.Property, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.Property
	if err := s.client.Post(ctx, "/properties", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Update replaces a listing's editable fields.
func (s *Service) Update(ctx context.Context, id string, req models.PropertyRequest) (*models.Property, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.Property
	if err := s.client.Put(ctx, "/properties/"+id, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/properties/"+id)
}

// SetPublished toggles a listing's visibility in the public catalog.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) error {
	body := struct {
		Published bool `json:"published"`
	}{Published: published}

	return s.client.Post(ctx, fmt.Sprintf("/properties/%s/publish", id), body, nil)
}

// Search queries the public catalog with the given filters.
func (s *Service) Search(ctx context.Context, filter models.PropertySearch) (*models.Page[models.Property], error) {
	query := url.Values{}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.CountryCode != "" {
		query.Set("country", filter.CountryCode)
	}
	if filter.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Guests > 0 {
		query.Set("guests", strconv.Itoa(filter.Guests))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	var out models.Page[models.Property]
	if err := s.client.GetQuery(ctx, "/properties/search", query, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
