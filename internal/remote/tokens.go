package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (s *Store) GenerateTableToken(ctx context.Context, table int) (string, error) {
	q := url.Values{"tableNumber": {strconv.Itoa(table)}, "userId": {s.userID}}
	data, err := s.send(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/tokens/generate", query: q})
	if err != nil {
		return "", err
	}
	return text(data, "token"), nil
}

func (s *Store) WebsiteURL(ctx context.Context) (string, error) {
	data, err := s.send(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/users/" + seg(s.userID) + "/website-url"})
	if err != nil {
		return "", err
	}
	return text(data, "websiteUrl", "url"), nil
}
