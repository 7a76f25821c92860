package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *BookingGormRepository) RecordBooking(
	ctx context.Context,
	rec *models.BookingRecord,
) error {

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("booking_already_recorded")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.BookingRecord, error) {

	var recs []models.BookingRecord
	if err := r.db.WithContext(ctx).
		Where("booking_date >= ? AND booking_date < ?", start, end).
		Order("booking_date ASC, time_slot ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	return recs, nil
}

// Compile-time check
var _ domain.Ledger = (*BookingGormRepository)(nil)
