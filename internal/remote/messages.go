package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

func (s *Store) SaveMessage(ctx context.Context, m models.Message) (*models.Message, error) {
	var out models.Message
	if err := s.callJSON(ctx, request{method: http.MethodPost, base: s.c.SiteURL, path: "/api/messages", query: s.userQuery()}, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	var out []models.Message
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/messages", query: s.userQuery()}, &out)
	return out, err
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.SiteURL, path: "/api/messages/" + seg(id)}, nil)
}

func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.SiteURL, "/api/messages/count", s.userQuery())
}
