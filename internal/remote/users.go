package remote

import (
	"context"
	"net/http"

	"restoran-backoffice/internal/models"
)

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s := &Store{c: c}
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := s.callJSON(ctx, request{method: http.MethodPost, base: c.SiteURL, path: "/api/users/login"}, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	s := &Store{c: c}
	return s.callJSON(ctx, request{method: http.MethodPost, base: c.SiteURL, path: "/api/users/forgot-password"}, map[string]string{"email": email}, nil)
}

type ProfileForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	StoreName string
	City      string
}

func (s *Store) GetUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/users/" + seg(s.userID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLogo returns the raw logo bytes; an empty slice means the store has none.
func (s *Store) GetLogo(ctx context.Context) ([]byte, error) {
	return s.send(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/users/" + seg(s.userID) + "/logo"})
}

func (s *Store) UpdateUser(ctx context.Context, form ProfileForm, logo File) (*models.User, error) {
	f := newForm().
		field("firstName", form.FirstName).
		field("lastName", form.LastName).
		field("email", form.Email).
		field("phone", form.Phone).
		field("storeName", form.StoreName).
		field("city", form.City).
		file("logo", logo)

	var out models.User
	if err := s.callForm(ctx, request{method: http.MethodPut, base: s.c.SiteURL, path: "/api/users/" + seg(s.userID)}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
