package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type businessMapping struct {
	status  int
	message string
	field   string
}

var bookingErrors = map[string]businessMapping{
	"form_not_found":         {http.StatusNotFound, "Booking form not found. Reload the page.", ""},
	"form_completed":         {http.StatusConflict, "This booking is already complete. Reload the page to book again.", ""},
	"submission_in_progress": {http.StatusConflict, "Your booking is being sent. Please wait.", ""},
	"slots_not_loaded":       {http.StatusConflict, "Select service and date first.", ""},

	"unknown_service": {http.StatusBadRequest, "Unknown service.", "service"},
	"invalid_date":    {http.StatusBadRequest, "Invalid date.", "date"},

	"name_required":    {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "name"},
	"phone_required":   {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "phone"},
	"date_required":    {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "date"},
	"slot_required":    {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "time"},
	"service_required": {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "service"},
	"proof_required":   {http.StatusBadRequest, "Fill all fields, including payment screenshot!", "payment_proof"},
	"slot_unknown":     {http.StatusBadRequest, "Choose one of the offered times.", "time"},
	"slot_booked":      {http.StatusConflict, "This time is already booked! Choose another.", "time"},

	"image_processing_failed": {http.StatusUnprocessableEntity, "Failed to process the image. Please try again.", "payment_proof"},
}

// writeBookingError maps use case errors to HTTP responses.
func writeBookingError(c *gin.Context, err error, fallbackContact string) {
	var dayErr *domain.InvalidDayError
	if errors.As(err, &dayErr) {
		writeInvalidDay(c, dayErr)
		return
	}

	code := httperr.CodeOf(err)

	if code == "booking_save_failed" {
		httperr.Write(c, http.StatusBadGateway, code,
			fmt.Sprintf("Booking save failed – contact %s", fallbackContact))
		return
	}

	if m, ok := bookingErrors[code]; ok {
		if m.field != "" {
			httperr.WriteDetails(c, m.status, code, m.message, gin.H{"field": m.field})
			return
		}
		httperr.Write(c, m.status, code, m.message)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected booking error")
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

func writeInvalidDay(c *gin.Context, e *domain.InvalidDayError) {
	details := gin.H{
		"reason": e.Reason,
		"date":   e.Date.Format(domain.DateLayout),
	}

	if e.Reason == domain.ReasonPastDate {
		httperr.WriteDetails(c, http.StatusUnprocessableEntity, string(e.Reason),
			"Cannot book in the past! Choose today or future.", details)
		return
	}

	details["weekday"] = e.Weekday
	details["required"] = e.Required

	name := "haircut"
	if e.Service == domain.ServiceBeard {
		name = "beard service"
	}
	httperr.WriteDetails(c, http.StatusUnprocessableEntity, string(e.Reason),
		fmt.Sprintf("Invalid day for %s! Only %s allowed. (%s selected)", name, e.Required, e.Weekday),
		details)
}
