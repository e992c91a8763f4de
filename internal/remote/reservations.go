package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

func (s *Store) BookTable(ctx context.Context, r models.Reservation) (*models.Reservation, error) {
	var out models.Reservation
	if err := s.callJSON(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/reservations/book", query: s.userQuery()}, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/reservations/all/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var out models.Reservation
	if err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/reservations/" + seg(id) + "/" + seg(s.userID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) UpdateReservation(ctx context.Context, id int64, r models.Reservation) (*models.Reservation, error) {
	var out models.Reservation
	if err := s.callJSON(ctx, request{method: http.MethodPut, base: s.c.MenuURL, path: "/api/reservations/" + seg(id), query: s.userQuery()}, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.MenuURL, path: "/api/reservations/" + seg(id) + "/" + seg(s.userID)}, nil)
}

func (s *Store) CountReservations(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.MenuURL, "/api/reservations/count/"+seg(s.userID), nil)
}
