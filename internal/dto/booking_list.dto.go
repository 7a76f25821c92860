package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	FormID       string    `json:"form_id"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	ServiceLabel string    `json:"service_label"`
	Price        string    `json:"price"`
	Notified     bool      `json:"notified"`
	HasProof     bool      `json:"has_proof"`
	CreatedAt    time.Time `json:"created_at"`
}
