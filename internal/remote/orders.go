package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var out models.Order
	if err := s.callJSON(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/orders/create", query: s.userQuery()}, order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) OrdersByTable(ctx context.Context, table int) ([]models.Order, error) {
	var out []models.Order
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/orders/table/" + seg(table) + "/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) TableOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/orders/table/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) DeliveryOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/orders/delivery/" + seg(s.userID)}, &out)
	return out, err
}

// Orders lists the orders of one kind.
func (s *Store) Orders(ctx context.Context, kind models.OrderKind) ([]models.Order, error) {
	if kind == models.OrderKindDelivery {
		return s.DeliveryOrders(ctx)
	}
	return s.TableOrders(ctx)
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status bool) (*models.Order, error) {
	var out models.Order
	body := map[string]bool{"status": status}
	if err := s.callJSON(ctx, request{method: http.MethodPut, base: s.c.MenuURL, path: "/api/orders/" + seg(id) + "/status", query: s.userQuery()}, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.MenuURL, path: "/api/orders/" + seg(id) + "/" + seg(s.userID)}, nil)
}

func (s *Store) CountTableOrders(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.MenuURL, "/api/orders/count/table/"+seg(s.userID), nil)
}

func (s *Store) CountDeliveryOrders(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.MenuURL, "/api/orders/count/delivery/"+seg(s.userID), nil)
}
