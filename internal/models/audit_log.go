package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog records one successful admin mutation against the upstream API.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi mağaza? (upstream userId)
	StoreID string `gorm:"size:64;index" json:"store_id"`

	// Oturumu açan kullanıcının e-postası (denormalize)
	UserEmail string `gorm:"size:150" json:"user_email"`

	// ör: "category", "food", "order", "reservation"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:64;index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// İsteğin gövdesi (JSON), dosyalar hariç
	Payload string `gorm:"type:text" json:"payload"`

	// requestid middleware'inden gelen korelasyon kimliği
	RequestID string `gorm:"size:64" json:"request_id"`
}
