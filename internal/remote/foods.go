package remote

import (
	"context"
	"net/http"
	"strconv"

	"restoran-backoffice/internal/models"
)

// FoodForm is the text part of a food create/update.
type FoodForm struct {
	Name         string
	Price        float64
	Description  string
	CategoryName string
}

func (f FoodForm) fields(b *formBody) *formBody {
	return b.
		field("name", f.Name).
		field("price", strconv.FormatFloat(f.Price, 'f', -1, 64)).
		field("description", f.Description).
		field("categoryName", f.CategoryName)
}

func (s *Store) ListFoods(ctx context.Context) ([]models.Food, error) {
	var out []models.Food
	err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/foods/" + seg(s.userID)}, &out)
	return out, err
}

func (s *Store) FoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	var out []models.Food
	err := s.call(ctx, request{
		method: http.MethodGet,
		base:   s.c.MenuURL,
		path:   "/api/foods/by-category/" + seg(category) + "/" + seg(s.userID),
	}, &out)
	return out, err
}

func (s *Store) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	var out models.Food
	if err := s.call(ctx, request{method: http.MethodGet, base: s.c.MenuURL, path: "/api/foods/" + seg(id) + "/" + seg(s.userID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) AddFood(ctx context.Context, form FoodForm, images ...File) (*models.Food, error) {
	f := form.fields(newForm()).
		field("userId", s.userID).
		files("images", images)

	var out models.Food
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/foods"}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFood replaces the text fields, appends images and drops removedImageIDs.
func (s *Store) UpdateFood(ctx context.Context, id int64, form FoodForm, images []File, removedImageIDs []int64) (*models.Food, error) {
	f := form.fields(newForm()).field("userId", s.userID)
	for _, rid := range removedImageIDs {
		f.field("removedImageIds", strconv.FormatInt(rid, 10))
	}
	f.files("images", images)

	var out models.Food
	if err := s.callForm(ctx, request{method: http.MethodPut, base: s.c.MenuURL, path: "/api/foods/" + seg(id)}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) AddFoodImage(ctx context.Context, id int64, image File) (*models.Food, error) {
	f := newForm().file("image", image)

	var out models.Food
	if err := s.callForm(ctx, request{method: http.MethodPost, base: s.c.MenuURL, path: "/api/foods/" + seg(id) + "/add-image"}, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteFood(ctx context.Context, id int64) error {
	return s.call(ctx, request{method: http.MethodDelete, base: s.c.MenuURL, path: "/api/foods/" + seg(id) + "/" + seg(s.userID)}, nil)
}

func (s *Store) CountFoods(ctx context.Context) (int64, error) {
	return s.count(ctx, s.c.MenuURL, "/api/foods/count/"+seg(s.userID), nil)
}
