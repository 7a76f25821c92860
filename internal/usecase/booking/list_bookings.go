package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListBookingsByDate struct {
	ledger domain.Ledger
}

func NewListBookingsByDate(
	ledger domain.Ledger,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		ledger: ledger,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	start := domain.DateOnly(date)
	end := start.AddDate(0, 0, 1)

	records, err := uc.ledger.ListBookingsForDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.BookingListDTO{
			ID:           rec.ID,
			FormID:       rec.FormID,
			Date:         rec.BookingDate.Format(domain.DateLayout),
			TimeSlot:     rec.TimeSlot,
			ClientName:   rec.ClientName,
			ClientPhone:  rec.ClientPhone,
			ServiceLabel: rec.ServiceLabel,
			Price:        rec.Price,
			Notified:     rec.Notified,
			HasProof:     rec.ProofKey != "",
			CreatedAt:    rec.CreatedAt,
		})
	}

	return out, nil
}
