package models

import (
	"time"
)

// ActivityLog is one journaled outcome of a dashboard operation
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:16;index" json:"type"`   // "success" or "error"
	Entity    string    `gorm:"size:32;index" json:"entity"` // "employee", "product", "sale", "reconciliation"
	EntityID  int       `json:"entity_id"`
	Action    string    `gorm:"size:32" json:"action"`
	Field     string    `gorm:"size:64" json:"field,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
