package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/observability/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	PromptSelectFirst = "Select service and date first"
	NoticeDayFull     = "All slots taken for this day. Pick another."
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SelectSlotsInput struct {
	FormID  string
	Service string
	Date    string // YYYY-MM-DD
}

type SelectSlotsResult struct {
	Form      *domain.Form
	Prompt    string
	Notice    string
	Available int
}

// ======================================================
// USE CASE
// ======================================================

type SelectSlots struct {
	forms   domain.FormStore
	store   domain.ReservationStore
	clock   timezone.Clock
	metrics *metrics.BookingMetrics
}

func NewSelectSlots(
	forms domain.FormStore,
	store domain.ReservationStore,
	clock timezone.Clock,
	m *metrics.BookingMetrics,
) *SelectSlots {
	return &SelectSlots{
		forms:   forms,
		store:   store,
		clock:   clock,
		metrics: m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SelectSlots) Execute(
	ctx context.Context,
	in SelectSlotsInput,
) (*SelectSlotsResult, error) {

	form, err := uc.forms.GetForm(ctx, in.FormID)
	if err != nil {
		return nil, err
	}
	if err := form.CanSelect(); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	var service domain.ServiceKind
	if raw := strings.TrimSpace(in.Service); raw != "" {
		if service, err = domain.ParseServiceKind(raw); err != nil {
			return nil, err
		}
	}
	dateStr := strings.TrimSpace(in.Date)

	// --------------------------------------------------
	// Seleção incompleta: estado neutro
	// --------------------------------------------------
	if service == "" || dateStr == "" {
		form.Reset(service, dateStr, now)
		if err := uc.forms.SaveForm(ctx, form); err != nil {
			return nil, err
		}
		return &SelectSlotsResult{Form: form, Prompt: PromptSelectFirst}, nil
	}

	date, err := timezone.ParseDate(dateStr, now.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// --------------------------------------------------
	// Gerador de horários
	// --------------------------------------------------
	slots, err := domain.GenerateSlots(service, date, timezone.Today(uc.clock))
	if err != nil {
		form.Reset(service, "", now)
		if saveErr := uc.forms.SaveForm(ctx, form); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	// --------------------------------------------------
	// Horários já reservados (fail-open)
	// --------------------------------------------------
	booked := make(map[string]struct{})
	times, err := uc.store.ListBookedTimes(ctx, dateStr)
	if err != nil {
		log.Warn().Err(err).
			Str("form_id", form.ID).
			Str("date", dateStr).
			Msg("booked-slot lookup failed, treating all slots as available")
		uc.metrics.ObserveSlotLookup("failed")
	} else {
		uc.metrics.ObserveSlotLookup("ok")
		for _, t := range times {
			booked[strings.TrimSpace(t)] = struct{}{}
		}
	}

	form.LoadSlots(service, dateStr, slots, booked, now)
	if err := uc.forms.SaveForm(ctx, form); err != nil {
		return nil, err
	}

	res := &SelectSlotsResult{
		Form:      form,
		Available: form.AvailableCount(),
	}
	if form.DayFull() {
		res.Notice = NoticeDayFull
	}
	return res, nil
}
