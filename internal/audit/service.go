package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"restoran-backoffice/internal/models"
)

// Publisher forwards written entries to another system. May be nil.
type Publisher interface {
	Publish(ctx context.Context, entry models.AuditLog) error
	Close() error
}

type Service struct {
	db  *gorm.DB
	pub Publisher
}

func NewService(db *gorm.DB, pub Publisher) *Service {
	return &Service{db: db, pub: pub}
}

type LogOptions struct {
	StoreID     string
	UserEmail   string
	EntityType  string
	EntityID    any
	Action      models.AuditAction
	Description string
	Payload     any
	RequestID   string
}

func (s *Service) WriteLog(ctx context.Context, opts LogOptions) error {
	payload := "null"
	if opts.Payload != nil {
		if b, err := json.Marshal(opts.Payload); err == nil {
			payload = string(b)
		}
	}

	entityID := ""
	if opts.EntityID != nil {
		entityID = fmt.Sprint(opts.EntityID)
	}

	entry := models.AuditLog{
		StoreID:     opts.StoreID,
		UserEmail:   opts.UserEmail,
		EntityType:  opts.EntityType,
		EntityID:    entityID,
		Action:      opts.Action,
		Description: opts.Description,
		Payload:     payload,
		RequestID:   opts.RequestID,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	if s.pub != nil {
		if err := s.pub.Publish(ctx, entry); err != nil {
			// kayıt veritabanında, yayın hatası isteği bozmasın
			log.Printf("[AUDIT] kafka'ya gönderilemedi (id=%d): %v", entry.ID, err)
		}
	}
	return nil
}

type ListFilter struct {
	StoreID    string
	EntityType string
	Page       int
	PageSize   int
}

// List returns one page of the store's entries, newest first, and the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("store_id = ?", f.StoreID)
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("loglar sayılamadı: %w", err)
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").Order("id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("loglar listelenemedi: %w", err)
	}
	return logs, total, nil
}

func (s *Service) Close() error {
	if s.pub != nil {
		return s.pub.Close()
	}
	return nil
}
