package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrFormNotFound         = httperr.ErrBusiness("form_not_found")
	ErrSubmissionInProgress = httperr.ErrBusiness("submission_in_progress")
)

// -------- Reservation store (external) --------
type ReservationStore interface {
	ListBookedTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	AppendReservation(
		ctx context.Context,
		r Reservation,
	) error
}

// -------- Notification relay (external) --------
type Relay interface {
	Notify(
		ctx context.Context,
		n Notification,
	) error
}

// -------- Shop status document (external) --------
type StatusSource interface {
	FetchStatus(ctx context.Context) (string, error)
}

// -------- Form state --------
type FormStore interface {
	GetForm(
		ctx context.Context,
		id string,
	) (*Form, error)

	SaveForm(
		ctx context.Context,
		f *Form,
	) error

	// LockSubmission holds the single in-flight submission of a form.
	LockSubmission(
		ctx context.Context,
		formID string,
	) (unlock func(), err error)
}

// -------- Proof archive --------
type ProofArchive interface {
	StoreProof(
		ctx context.Context,
		formID string,
		proof *Proof,
	) (key string, err error)
}

// -------- Local ledger --------
type Ledger interface {
	RecordBooking(
		ctx context.Context,
		rec *models.BookingRecord,
	) error

	ListBookingsForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.BookingRecord, error)
}
