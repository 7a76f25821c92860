package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/imaging"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/observability/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const (
	WarningRelayRejected    = "Booking saved to our system, but notification failed. We'll contact you soon!"
	warningRelayUnreachable = "Booking saved! If you don't hear from us, please message %s."
)

// ======================================================
// INPUT
// ======================================================

type SubmitBookingInput struct {
	FormID    string
	Name      string
	Phone     string
	SlotLabel string
	Proof     io.Reader // nil when no file was attached
}

type SubmitBookingResult struct {
	Form    *domain.Form
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBookingDeps struct {
	Forms       domain.FormStore
	Store       domain.ReservationStore
	Relay       domain.Relay
	Archive     domain.ProofArchive // optional
	Ledger      domain.Ledger       // optional
	Audit       *audit.Dispatcher
	Metrics     *metrics.BookingMetrics
	Clock       timezone.Clock
	PhoneRegion string

	FallbackContact string
}

type SubmitBooking struct {
	SubmitBookingDeps
}

func NewSubmitBooking(deps SubmitBookingDeps) *SubmitBooking {
	return &SubmitBooking{SubmitBookingDeps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*SubmitBookingResult, error) {

	// --------------------------------------------------
	// 1️⃣ Um envio por vez por formulário
	// --------------------------------------------------
	unlock, err := uc.Forms.LockSubmission(ctx, in.FormID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form, err := uc.Forms.GetForm(ctx, in.FormID)
	if err != nil {
		return nil, err
	}

	switch form.State {
	case domain.StateSucceeded, domain.StateSubmitting:
		return nil, form.CanSubmit()
	}

	// --------------------------------------------------
	// 2️⃣ Pré-condições
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	label := strings.TrimSpace(in.SlotLabel)

	if err := validateSubmission(form, name, phone, label, in.Proof); err != nil {
		uc.Metrics.ObserveSubmission("rejected")
		return nil, err
	}

	now := uc.Clock.Now()
	form.BeginSubmit(name, validators.NormalizePhone(phone, uc.PhoneRegion), label, now)
	if err := uc.Forms.SaveForm(ctx, form); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Imagem → base64
	// --------------------------------------------------
	proof, err := imaging.EncodeProof(in.Proof)
	if err != nil {
		log.Warn().Err(err).Str("form_id", form.ID).Msg("payment proof processing failed")
		return nil, uc.fail(ctx, form, "image_processing_failed")
	}

	// --------------------------------------------------
	// 4️⃣ Gravação na planilha (ponto de commit)
	// --------------------------------------------------
	reservation := domain.Reservation{
		Date:    form.Date,
		Time:    form.SlotLabel,
		Name:    form.Name,
		Phone:   form.Phone,
		Service: form.Service,
	}

	if err := uc.Store.AppendReservation(ctx, reservation); err != nil {
		log.Error().Err(err).
			Str("form_id", form.ID).
			Str("date", form.Date).
			Str("slot", form.SlotLabel).
			Msg("reservation store write failed")
		return nil, uc.fail(ctx, form, "booking_save_failed")
	}

	// --------------------------------------------------
	// 5️⃣ Notificação (best-effort, pós-commit)
	// --------------------------------------------------
	// a reserva já existe: o restante não pode ser cancelado junto com a requisição
	committed := context.WithoutCancel(ctx)

	warning, notifyErr := uc.notify(committed, form, reservation, proof)

	form.Succeed(warning, uc.Clock.Now())
	if err := uc.Forms.SaveForm(committed, form); err != nil {
		log.Error().Err(err).Str("form_id", form.ID).Msg("failed to persist succeeded form")
	}
	uc.Metrics.ObserveSubmission("succeeded")

	uc.recordCommitted(committed, form, proof, notifyErr)

	return &SubmitBookingResult{Form: form, Warning: warning}, nil
}

func validateSubmission(
	form *domain.Form,
	name, phone, label string,
	proof io.Reader,
) error {

	switch {
	case name == "":
		return httperr.ErrBusiness("name_required")
	case phone == "":
		return httperr.ErrBusiness("phone_required")
	case form.Date == "":
		return httperr.ErrBusiness("date_required")
	case label == "":
		return httperr.ErrBusiness("slot_required")
	case form.Service == "":
		return httperr.ErrBusiness("service_required")
	case proof == nil:
		return httperr.ErrBusiness("proof_required")
	}

	if err := form.CanSubmit(); err != nil {
		return err
	}

	slot, ok := form.FindSlot(label)
	if !ok {
		return httperr.ErrBusiness("slot_unknown")
	}
	if slot.Booked {
		return httperr.ErrBusiness("slot_booked")
	}
	return nil
}

func (uc *SubmitBooking) fail(ctx context.Context, form *domain.Form, code string) error {
	form.Fail(code, uc.Clock.Now())
	if err := uc.Forms.SaveForm(context.WithoutCancel(ctx), form); err != nil {
		log.Error().Err(err).Str("form_id", form.ID).Msg("failed to persist failed form")
	}
	uc.Metrics.ObserveSubmission(code)

	uc.Audit.Dispatch(audit.Event{
		FormID: form.ID,
		Action: "booking_failed",
		Entity: "form",
		Metadata: map[string]any{
			"reason": code,
			"date":   form.Date,
			"slot":   form.SlotLabel,
		},
	})

	return httperr.ErrBusiness(code)
}

func (uc *SubmitBooking) notify(
	ctx context.Context,
	form *domain.Form,
	r domain.Reservation,
	proof *domain.Proof,
) (string, error) {

	err := uc.Relay.Notify(ctx, domain.NewNotification(r, proof))
	if err == nil {
		uc.Metrics.ObserveNotification("delivered")
		return "", nil
	}

	var rejected *domain.RelayRejectedError
	if errors.As(err, &rejected) {
		log.Warn().Err(err).Str("form_id", form.ID).Msg("relay reported notification failure")
		uc.Metrics.ObserveNotification("rejected")
		return WarningRelayRejected, err
	}

	log.Warn().Err(err).Str("form_id", form.ID).Msg("relay unreachable")
	uc.Metrics.ObserveNotification("unreachable")
	return fmt.Sprintf(warningRelayUnreachable, uc.FallbackContact), err
}

// recordCommitted runs the side effects that follow a committed booking.
// Their failures are logged and never undo the booking.
func (uc *SubmitBooking) recordCommitted(
	ctx context.Context,
	form *domain.Form,
	proof *domain.Proof,
	notifyErr error,
) {

	var proofKey string
	if uc.Archive != nil {
		key, err := uc.Archive.StoreProof(ctx, form.ID, proof)
		if err != nil {
			log.Warn().Err(err).Str("form_id", form.ID).Msg("payment proof archive failed")
		} else {
			proofKey = key
		}
	}

	rec := &models.BookingRecord{
		FormID:       form.ID,
		TimeSlot:     form.SlotLabel,
		ClientName:   truncate(form.Name, maxClientName),
		ClientPhone:  truncate(form.Phone, maxClientPhone),
		Service:      string(form.Service),
		ServiceLabel: form.Service.Info().Label,
		Price:        form.Service.Info().Price,
		ProofKey:     proofKey,
		Notified:     notifyErr == nil,
	}
	if notifyErr != nil {
		rec.NotifyError = truncate(notifyErr.Error(), maxNotifyError)
	}
	if d, err := timezone.ParseDate(form.Date, uc.Clock.Now().Location()); err == nil {
		rec.BookingDate = d
	}

	if uc.Ledger != nil {
		if err := uc.Ledger.RecordBooking(ctx, rec); err != nil {
			log.Warn().Err(err).Str("form_id", form.ID).Msg("booking ledger write failed")
		}
	}

	var entityID *uint
	if rec.ID != 0 {
		entityID = &rec.ID
	}

	uc.Audit.Dispatch(audit.Event{
		FormID:   form.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: entityID,
		Metadata: map[string]any{
			"date":     form.Date,
			"slot":     form.SlotLabel,
			"service":  form.Service,
			"notified": notifyErr == nil,
		},
	})
}

// limites das colunas do ledger
const (
	maxClientName  = 100
	maxClientPhone = 50
	maxNotifyError = 255
)

// truncate corta em runas; varchar(n) conta caracteres.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
