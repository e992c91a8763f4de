package menu

import (
	"strconv"
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type FoodResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Images      []models.Image `json:"images"`
}

type FoodRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Price        string `json:"price" form:"price" validate:"required"`
	Description  string `json:"description" form:"description" validate:"required"`
	CategoryName string `json:"categoryName" form:"categoryName" validate:"required"`
}

func toFoodResponse(f models.Food) FoodResponse {
	images := f.Images
	if images == nil {
		images = []models.Image{}
	}
	return FoodResponse{
		ID:          f.ID,
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
		Category:    f.CategoryName(),
		Images:      images,
	}
}

// form validates the request and converts it for the upstream call.
func (r *FoodRequest) form(c *fiber.Ctx) (remote.FoodForm, map[string]string) {
	r.Name = strings.TrimSpace(r.Name)
	r.CategoryName = strings.TrimSpace(r.CategoryName)

	fields := web.Validate(c, r)
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(r.Price), ",", "."), 64)
	if r.Price != "" && (err != nil || price <= 0) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["price"] = i18n.Tc(c, "common.field.invalid")
	}

	return remote.FoodForm{
		Name:         r.Name,
		Price:        price,
		Description:  r.Description,
		CategoryName: r.CategoryName,
	}, fields
}

func removedIDs(raw []string) []int64 {
	var out []int64
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
				out = append(out, id)
			}
		}
	}
	return out
}

func foodsPage(c *fiber.Ctx, d *web.Deps, foods []models.Food) web.ListPage[FoodResponse] {
	search := c.Query("search")
	matched := listing.Filter(foods, func(f models.Food) bool {
		return listing.MatchFold(f.Name, search)
	})

	res := make([]FoodResponse, 0, len(matched))
	for _, f := range matched {
		res = append(res, toFoodResponse(f))
	}

	page := web.Paginate(c, res, d.PageSize())
	if cat := c.Query("category"); cat != "" {
		page.Filters = map[string]string{"category": cat}
	}
	return page
}

// GET /admin/foods?search=&category=&page=
// A category refetches from the server; search filters by name locally.
func ListFoodsHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := d.Store(c)

		var (
			foods []models.Food
			err   error
		)
		if cat := c.Query("category"); cat != "" {
			foods, err = store.FoodsByCategory(c.UserContext(), cat)
		} else {
			foods, err = store.ListFoods(c.UserContext())
		}
		if err != nil {
			return web.Upstream(c, "food.error.load", err, nil)
		}

		return c.JSON(foodsPage(c, d, foods))
	}
}

// GET /admin/foods/form
func FoodFormHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := d.Store(c).CategoryNames(c.UserContext())
		if err != nil {
			return web.Upstream(c, "category.error.load", err, nil)
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(fiber.Map{"categories": names})
	}
}

// GET /admin/foods/:id
func GetFoodHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		food, err := d.Store(c).GetFood(c.UserContext(), id)
		if err != nil {
			return web.Upstream(c, "food.error.load", err, nil)
		}
		return c.JSON(toFoodResponse(*food))
	}
}

// POST /admin/foods (multipart: name, price, description, categoryName, images...)
func CreateFoodHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FoodRequest
		_ = c.BodyParser(&body)

		form, fields := body.form(c)
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		images, err := web.Images(c, "images", media.Food)
		if err != nil {
			return web.ImageFailed(c, "images", err, body)
		}

		food, err := d.Store(c).AddFood(c.UserContext(), form, images...)
		if err != nil {
			return web.Upstream(c, "food.error.add", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "food",
			EntityID:    food.ID,
			Action:      models.AuditActionCreate,
			Description: "Yemek eklendi: " + form.Name,
			Payload:     body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "food.success.added"), toFoodResponse(*food))
	}
}

// PUT /admin/foods/:id (multipart, plus images and removedImageIds)
func UpdateFoodHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body FoodRequest
		_ = c.BodyParser(&body)

		form, fields := body.form(c)
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		images, err := web.Images(c, "images", media.Food)
		if err != nil {
			return web.ImageFailed(c, "images", err, body)
		}

		removed := removedIDs(web.FormValues(c, "removedImageIds"))
		food, err := d.Store(c).UpdateFood(c.UserContext(), id, form, images, removed)
		if err != nil {
			return web.Upstream(c, "food.error.update", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "food",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Yemek güncellendi: " + form.Name,
			Payload:     fiber.Map{"form": body, "removedImageIds": removed},
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "food.success.updated"), toFoodResponse(*food))
	}
}

// POST /admin/foods/:id/images (multipart: image)
func AddFoodImageHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		image, err := web.Image(c, "image", media.Food)
		if err != nil {
			return web.ImageFailed(c, "image", err, nil)
		}
		if image.Empty() {
			return web.Invalid(c, web.Required(c, nil, "image", true), nil)
		}

		food, err := d.Store(c).AddFoodImage(c.UserContext(), id, image)
		if err != nil {
			return web.Upstream(c, "food.error.imageAdd", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "food",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Yemeğe görsel eklendi",
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "food.success.imageAdded"), toFoodResponse(*food))
	}
}

// DELETE /admin/foods/:id, answers with the refetched list.
func DeleteFoodHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		store := d.Store(c)
		if err := store.DeleteFood(c.UserContext(), id); err != nil {
			return web.Upstream(c, "food.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "food",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})

		foods, err := store.ListFoods(c.UserContext())
		if err != nil {
			return web.Upstream(c, "food.error.load", err, nil)
		}
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "food.success.deleted"), foodsPage(c, d, foods))
	}
}
