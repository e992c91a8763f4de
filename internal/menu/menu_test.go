package menu

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/web"
	"restoran-backoffice/internal/webtest"
)

func categories() []map[string]any {
	names := []string{"Tajines", "Couscous", "Salades", "Desserts", "Boissons", "Tajines froids", "Pastillas"}
	out := make([]map[string]any, len(names))
	for i, n := range names {
		out[i] = map[string]any{"id": i + 1, "name": n}
	}
	return out
}

func auditCount(t *testing.T, d *web.Deps, entity string) int64 {
	t.Helper()
	_, total, err := d.Audit.List(context.Background(), audit.ListFilter{StoreID: webtest.UserID, EntityType: entity, Page: 1, PageSize: 50})
	require.NoError(t, err)
	return total
}

func TestListCategories_SearchAndPaginate(t *testing.T) {
	up := webtest.NewUpstream(t).JSON("GET", "/api/categories/42", 200, categories())
	app := webtest.App()
	app.Get("/categories", ListCategoriesHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/categories", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["pageCount"])
	assert.Equal(t, true, body["showPagination"])
	assert.Len(t, body["items"], 5)

	status, body = webtest.Do(t, app, httptest.NewRequest("GET", "/categories?search=TAJINE&page=2", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, false, body["showPagination"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Tajines froids", items[1].(map[string]any)["name"])
	assert.Equal(t, "TAJINE", body["search"])
}

func TestListCategories_UpstreamFailure(t *testing.T) {
	up := webtest.NewUpstream(t).JSON("GET", "/api/categories/42", 500, map[string]string{"message": "db down"})
	app := webtest.App()
	app.Get("/categories", ListCategoriesHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/categories", nil))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Failed to load categories: db down", body["error"])
}

func TestCreateCategory_RequiresImage(t *testing.T) {
	up := webtest.NewUpstream(t)
	d := webtest.Deps(t, up)
	app := webtest.App()
	app.Post("/categories", CreateCategoryHandler(d))

	req := webtest.MultipartRequest(t, "POST", "/categories", map[string][]string{"name": {"Grillades"}})
	status, body := webtest.Do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "image")
	assert.Equal(t, "Grillades", body["form"].(map[string]any)["name"])
	assert.Empty(t, up.Calls())
	assert.Zero(t, auditCount(t, d, "category"))
}

func TestCreateCategory(t *testing.T) {
	var gotName string
	up := webtest.NewUpstream(t)
	up.On("POST", "/api/categories/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":8,"name":"Grillades"}`)
	})
	d := webtest.Deps(t, up)
	app := webtest.App()
	app.Post("/categories", CreateCategoryHandler(d))

	req := webtest.MultipartRequest(t, "POST", "/categories", map[string][]string{"name": {" Grillades "}},
		webtest.Part{Field: "image", Filename: "g.jpg", Data: webtest.JPEG(t)})
	status, body := webtest.Do(t, app, req)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Category added", body["message"])
	assert.Equal(t, "Grillades", gotName)
	assert.Equal(t, int64(1), auditCount(t, d, "category"))
}

func TestDeleteCategory_FailureKeepsStatus(t *testing.T) {
	up := webtest.NewUpstream(t).JSON("DELETE", "/api/categories/3", 409, map[string]string{"message": "category has foods"})
	d := webtest.Deps(t, up)
	app := webtest.App()
	app.Delete("/categories/:id", DeleteCategoryHandler(d))

	status, body := webtest.Do(t, app, httptest.NewRequest("DELETE", "/categories/3", nil))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Failed to delete category: category has foods", body["error"])
	assert.Zero(t, auditCount(t, d, "category"))
}

func TestListFoods_CategoryRefetches(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("GET", "/api/foods/by-category/Tajines/42", 200, []map[string]any{
		{"id": 1, "name": "Tajine poulet", "price": 60},
		{"id": 2, "name": "Tajine kefta", "price": 55},
	})
	app := webtest.App()
	app.Get("/foods", ListFoodsHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/foods?category=Tajines&search=kefta", nil))
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Tajine kefta", items[0].(map[string]any)["name"])
	assert.Equal(t, map[string]any{"category": "Tajines"}, body["filters"])
	assert.Zero(t, up.CallsTo("GET", "/api/foods/42"))
}

func TestCreateFood_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
		files  []webtest.Part
		field  string
	}{
		{
			name:   "missing category",
			fields: map[string][]string{"name": {"Harira"}, "price": {"20"}, "description": {"soupe"}},
			field:  "categoryName",
		},
		{
			name:   "negative price",
			fields: map[string][]string{"name": {"Harira"}, "price": {"-2"}, "description": {"soupe"}, "categoryName": {"Soupes"}},
			field:  "price",
		},
		{
			name:   "unreadable image",
			fields: map[string][]string{"name": {"Harira"}, "price": {"20"}, "description": {"soupe"}, "categoryName": {"Soupes"}},
			files:  []webtest.Part{{Field: "images", Filename: "x.jpg", Data: []byte("garbage")}},
			field:  "images",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			up := webtest.NewUpstream(t)
			app := webtest.App()
			app.Post("/foods", CreateFoodHandler(webtest.Deps(t, up)))

			status, body := webtest.Do(t, app, webtest.MultipartRequest(t, "POST", "/foods", tc.fields, tc.files...))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["fields"], tc.field)
			assert.Equal(t, "Harira", body["form"].(map[string]any)["name"])
			assert.Empty(t, up.Calls())
		})
	}
}

func TestCreateFood(t *testing.T) {
	var images int
	var price string
	up := webtest.NewUpstream(t)
	up.On("POST", "/api/foods", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		images = len(r.MultipartForm.File["images"])
		price = r.FormValue("price")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":5,"name":"Harira","price":20.5,"category":{"id":1,"name":"Soupes"}}`)
	})
	d := webtest.Deps(t, up)
	app := webtest.App()
	app.Post("/foods", CreateFoodHandler(d))

	req := webtest.MultipartRequest(t, "POST", "/foods",
		map[string][]string{"name": {"Harira"}, "price": {"20,5"}, "description": {"soupe"}, "categoryName": {"Soupes"}},
		webtest.Part{Field: "images", Filename: "a.jpg", Data: webtest.JPEG(t)},
		webtest.Part{Field: "images", Filename: "b.jpg", Data: webtest.JPEG(t)},
	)
	status, body := webtest.Do(t, app, req)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, 2, images)
	assert.Equal(t, "20.5", price)
	assert.Equal(t, "Soupes", body["data"].(map[string]any)["category"])
	assert.Equal(t, int64(1), auditCount(t, d, "food"))
}

func TestUpdateFood_RemovedImages(t *testing.T) {
	var removed []string
	up := webtest.NewUpstream(t)
	up.On("PUT", "/api/foods/5", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		removed = r.MultipartForm.Value["removedImageIds"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":5,"name":"Harira"}`)
	})
	app := webtest.App()
	app.Put("/foods/:id", UpdateFoodHandler(webtest.Deps(t, up)))

	req := webtest.MultipartRequest(t, "PUT", "/foods/5", map[string][]string{
		"name": {"Harira"}, "price": {"22"}, "description": {"soupe"}, "categoryName": {"Soupes"},
		"removedImageIds": {"3", "4,5"},
	})
	status, _ := webtest.Do(t, app, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"3", "4", "5"}, removed)
}

func TestDeleteFood_Refetches(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("DELETE", "/api/foods/5/42", 200, map[string]string{})
	up.JSON("GET", "/api/foods/42", 200, []map[string]any{{"id": 6, "name": "Pastilla"}})
	app := webtest.App()
	app.Delete("/foods/:id", DeleteFoodHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("DELETE", "/foods/5", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Food deleted", body["message"])
	assert.Len(t, body["data"].(map[string]any)["items"], 1)
	assert.Equal(t, 1, up.CallsTo("GET", "/api/foods/42"))
}

func TestAddFoodImage_Required(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := webtest.App()
	app.Post("/foods/:id/images", AddFoodImageHandler(webtest.Deps(t, up)))

	status, _ := webtest.Do(t, app, webtest.MultipartRequest(t, "POST", "/foods/5/images", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, up.Calls())
}

func TestFoodForm(t *testing.T) {
	up := webtest.NewUpstream(t).JSON("GET", "/api/categories/names/42", 200, []string{"Soupes", "Tajines"})
	app := webtest.App()
	app.Get("/foods/form", FoodFormHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/foods/form", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Soupes", "Tajines"}, body["categories"])
}
