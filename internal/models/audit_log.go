package models

import "time"

// AuditLog records what happened to a booking form, one row per event.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FormID string `gorm:"size:36;index" json:"form_id,omitempty"`
	Actor  string `gorm:"size:100" json:"actor,omitempty"`
	Action string `gorm:"size:50;index;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
