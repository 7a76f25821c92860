package models

import "time"

// BookingRecord is the local copy of a booking committed to the reservation store.
type BookingRecord struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	FormID string `gorm:"size:36;uniqueIndex;not null" json:"form_id"`

	BookingDate time.Time `gorm:"type:date;index;not null" json:"booking_date"`
	TimeSlot    string    `gorm:"size:20;not null" json:"time_slot"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:50" json:"client_phone"`

	Service      string `gorm:"size:20;not null" json:"service"`
	ServiceLabel string `gorm:"size:100" json:"service_label"`
	Price        string `gorm:"size:20" json:"price"`

	ProofKey string `gorm:"size:255" json:"proof_key"`

	Notified    bool   `gorm:"default:false" json:"notified"`
	NotifyError string `gorm:"size:255" json:"notify_error"`

	CreatedAt time.Time `json:"created_at"`
}
