package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/categories/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) CategoryNames(ctx context.Context) ([]string, error) {
	var out []string
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/categories/names/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) UploadCategory(ctx context.Context, name string, image File) (*models.Category, error) {
	f := newForm().
		file("image", image).
		field("name", name).
		field("userId", s.userID)

	var out models.Category
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.SiteURL, path: "/api/categories/upload"}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.SiteURL, path: "/api/categories/" + seg(id)}, nil)
}

func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.SiteURL, "/api/categories/count/"+seg(s.userID), nil)
}
