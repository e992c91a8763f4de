package orders

import (
	"strconv"
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type OrderItemResponse struct {
	ID       int64   `json:"id"`
	FoodName string  `json:"foodName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	Kind            models.OrderKind    `json:"kind"`
	TableNumber     int                 `json:"tableNumber,omitempty"`
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	Total           float64             `json:"total"`
	Completed       bool                `json:"completed"`
	StatusLabel     string              `json:"statusLabel"`
	Items           []OrderItemResponse `json:"items"`
}

type UpdateStatusRequest struct {
	Status *bool `json:"status" validate:"required"`
}

func toOrderResponse(c *fiber.Ctx, kind models.OrderKind, o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:       it.ID,
			FoodName: it.FoodName,
			Price:    it.Price,
			Quantity: it.Quantity,
			Amount:   it.Amount(),
		})
	}

	label := i18n.Tc(c, "order.status."+StatusPending)
	if o.Status {
		label = i18n.Tc(c, "order.status."+StatusCompleted)
	}

	return OrderResponse{
		ID:              o.ID,
		Kind:            kind,
		TableNumber:     o.TableNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Total:           o.ComputedTotal(),
		Completed:       o.Status,
		StatusLabel:     label,
		Items:           items,
	}
}

// kindParam reads :kind as table or delivery.
func kindParam(c *fiber.Ctx) (models.OrderKind, error) {
	switch k := models.OrderKind(c.Params("kind")); k {
	case models.OrderKindTable, models.OrderKindDelivery:
		return k, nil
	default:
		return "", fiber.NewError(fiber.StatusNotFound, i18n.Tc(c, "order.error.kind"))
	}
}

// Matches reports whether o passes the search and status filters. Table orders
// match on the table number, delivery orders on the customer name; both match on
// any item's food name.
func Matches(kind models.OrderKind, o models.Order, search, status string) bool {
	switch status {
	case StatusPending:
		if o.Status {
			return false
		}
	case StatusCompleted:
		if !o.Status {
			return false
		}
	}

	if search == "" {
		return true
	}

	if kind == models.OrderKindDelivery {
		if listing.MatchFold(o.CustomerName, search) {
			return true
		}
	} else if strings.Contains(strconv.Itoa(o.TableNumber), search) {
		return true
	}

	for _, it := range o.Items {
		if listing.MatchFold(it.FoodName, search) {
			return true
		}
	}
	return false
}

// GET /admin/orders/:kind?search=&status=pending|completed&page=
func ListOrdersHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}

		orders, err := d.Store(c).Orders(c.UserContext(), kind)
		if err != nil {
			return web.Upstream(c, "order.error.load", err, nil)
		}

		search, status := c.Query("search"), c.Query("status")
		matched := listing.Filter(orders, func(o models.Order) bool {
			return Matches(kind, o, search, status)
		})

		res := make([]OrderResponse, 0, len(matched))
		for _, o := range matched {
			res = append(res, toOrderResponse(c, kind, o))
		}

		page := web.Paginate(c, res, d.PageSize())
		if status == StatusPending || status == StatusCompleted {
			page.Filters = map[string]string{"status": status}
		}
		return c.JSON(page)
	}
}

// PUT /admin/orders/:id/status {status}
// Answers with the updated order; the client replaces it in its current list.
func UpdateOrderStatusHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if ok, err := web.Bind(c, &body); !ok {
			return err
		}

		order, err := d.Store(c).UpdateOrderStatus(c.UserContext(), id, *body.Status)
		if err != nil {
			return web.Upstream(c, "order.error.status", err, body)
		}
		if order.ID == 0 {
			order.ID = id
			order.Status = *body.Status
		}

		kind := models.OrderKindTable
		if order.TableNumber == 0 && order.CustomerName != "" {
			kind = models.OrderKindDelivery
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "order",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Sipariş durumu güncellendi",
			Payload:     body,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "order.success.statusUpdated"), toOrderResponse(c, kind, *order))
	}
}

// DELETE /admin/orders/:id
func DeleteOrderHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteOrder(c.UserContext(), id); err != nil {
			return web.Upstream(c, "order.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "order",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "order.success.deleted"), fiber.Map{"id": id})
	}
}
