package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

func (s *Store) SaveLocation(ctx context.Context, mapLink string) (*models.Location, error) {
	var out models.Location
	body := map[string]string{"mapLink": mapLink, "userId": s.userID}
	if err := s.callJSON(ctx, request{method: http.MethodPost, base: s.c.SiteURL, path: "/api/locations"}, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLocation returns ErrNoUser without calling the server when the store has no userId.
func (s *Store) GetLocation(ctx context.Context) (*models.Location, error) {
	if s.userID == "" {
		return nil, ErrNoUser
	}
	var out models.Location
	if err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/locations/" + seg(s.userID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.SiteURL, path: "/api/locations/" + seg(id)}, nil)
}
