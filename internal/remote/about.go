package remote

import (
	"context"
	"net/http"
	"strconv"

	"restoran-backoffice/internal/models"
)

type AboutForm struct {
	Title             string
	Subtitle          string
	Description       string
	YearsOfExperience int
	NumberOfChefs     int
}

func (f AboutForm) fields(b *formBody) *formBody {
	return b.
		field("title", f.Title).
		field("subtitle", f.Subtitle).
		field("description", f.Description).
		field("yearsOfExperience", strconv.Itoa(f.YearsOfExperience)).
		field("numberOfChefs", strconv.Itoa(f.NumberOfChefs))
}

// AboutImages maps image1..image4 to their files.
type AboutImages map[string]File

func (imgs AboutImages) parts(b *formBody) *formBody {
	for _, key := range models.AboutImageKeys {
		b.file(key, imgs[key])
	}
	return b
}

func (s *Store) GetAbout(ctx context.Context) (*models.About, error) {
	var out models.About
	if err := s.call(ctx, request{method: http.MethodGet, base: s.c.SiteURL, path: "/api/about", query: s.userQuery()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) SaveAbout(ctx context.Context, form AboutForm, images AboutImages) (*models.About, error) {
	f := images.parts(form.fields(newForm()).field("userId", s.userID))

	var out models.About
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.SiteURL, path: "/api/about"}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAbout sends only the images present in images.
func (s *Store) UpdateAbout(ctx context.Context, form AboutForm, images AboutImages) (*models.About, error) {
	f := images.parts(form.fields(newForm()))

	var out models.About
	if err := s.callForm(ctx, request{method: http.MethodPut, base: s.c.SiteURL, path: "/api/about/" + seg(s.userID)}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteAboutImage(ctx context.Context, key string) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.SiteURL, path: "/api/about/" + seg(s.userID) + "/image/" + seg(key)}, nil)
}

func (s *Store) DeleteAbout(ctx context.Context) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.SiteURL, path: "/api/about/" + seg(s.userID)}, nil)
}

func (s *Store) SaveHeaderImage(ctx context.Context, title, subtitle string, bgImage File) (*models.HeaderImage, error) {
	f := newForm().
		field("title", title).
		field("subtitle", subtitle).
		file("bgImage", bgImage).
		field("userId", s.userID)

	var out models.HeaderImage
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.SiteURL, path: "/api/header-images"}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
