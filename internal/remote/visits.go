package remote

import (
	"context"
	"net/http"
)

// IncrementVisit bumps the public visit counter of store.
func (c *Client) IncrementVisit(ctx context.Context, store string) error {
	_, err := c.send(ctx, request{method: http.MethodGet, base: c.SiteURL, path: "/visite/" + seg(store) + "/increment"})
	return err
}

func (c *Client) VisitCount(ctx context.Context, store string) (int64, error) {
	return (&Store{c: c}).count(ctx, c.SiteURL, "/visite/"+seg(store)+"/count", nil)
}

func (s *Store) VisitCountByUser(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.SiteURL, "/visite/user/"+seg(s.userID)+"/count", nil)
}
