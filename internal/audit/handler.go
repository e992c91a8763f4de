package audit

import (
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/session"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserEmail   string             `json:"user_email"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	RequestID   string             `json:"request_id"`
}

// GET /admin/audit-logs?entity_type=food&page=2
func ListAuditLogsHandler(svc *Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.From(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, i18n.Tc(c, "common.error.unauthorized"))
		}

		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		filter := ListFilter{
			StoreID:    sess.UserID,
			EntityType: c.Query("entity_type"),
			Page:       page,
			PageSize:   pageSize,
		}

		logs, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, i18n.Tc(c, "audit.error.load"))
		}

		count := listing.PageCount(int(total), pageSize)
		if count > 0 && page > count {
			filter.Page = count
			if logs, _, err = svc.List(c.UserContext(), filter); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, i18n.Tc(c, "audit.error.load"))
			}
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserEmail:   l.UserEmail,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				RequestID:   l.RequestID,
			})
		}

		return c.JSON(listing.Page[AuditLogResponse]{
			Items:          resp,
			Page:           filter.Page,
			PageCount:      count,
			Total:          int(total),
			ShowPagination: count > 1,
		})
	}
}
