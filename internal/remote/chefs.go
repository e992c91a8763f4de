package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

type ChefForm struct {
	Name         string
	Designation  string
	FacebookURL  string
	InstagramURL string
}

func (f ChefForm) fields(b *formBody) *formBody {
	return b.
		field("name", f.Name).
		field("designation", f.Designation).
		field("facebookUrl", f.FacebookURL).
		field("instagramUrl", f.InstagramURL)
}

func (s *Store) ListChefs(ctx context.Context) ([]models.Chef, error) {
	var out []models.Chef
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/chefs/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) SaveChef(ctx context.Context, form ChefForm, image File) (*models.Chef, error) {
	f := form.fields(newForm()).file("image", image)

	var out models.Chef
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/chefs/" + seg(s.userID)}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateChef keeps the current image when image is empty.
func (s *Store) UpdateChef(ctx context.Context, id int64, form ChefForm, image File) (*models.Chef, error) {
	f := form.fields(newForm()).file("image", image)

	var out models.Chef
	if err := s.callForm(ctx, request{method: http.MethodPut, base: s.c.MenuURL, path: "/api/chefs/" + seg(id)}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteChef(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.MenuURL, path: "/api/chefs/" + seg(id)}, nil)
}
