package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const DateLayout = "2006-01-02"

// ===============================
// Form State
// ===============================

type State string

const (
	StateIdle        State = "idle"
	StateSlotsLoaded State = "slots_loaded"
	StateSubmitting  State = "submitting"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// SlotOption is a generated slot as presented to the customer.
type SlotOption struct {
	TimeSlot
	Label  string `json:"label"`
	Booked bool   `json:"booked"`
}

// Form is one booking form instance. A succeeded form cannot be reused.
type Form struct {
	ID      string       `json:"id"`
	State   State        `json:"state"`
	Service ServiceKind  `json:"service,omitempty"`
	Date    string       `json:"date,omitempty"`
	Slots   []SlotOption `json:"slots,omitempty"`

	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	SlotLabel string `json:"slot_label,omitempty"`

	Warning   string `json:"warning,omitempty"`
	LastError string `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewForm(id string, now time.Time) *Form {
	return &Form{
		ID:        id,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ===============================
// Validations
// ===============================

// CanSelect define se o formulário aceita nova seleção de serviço/data
func (f *Form) CanSelect() error {
	switch f.State {
	case StateSucceeded:
		return httperr.ErrBusiness("form_completed")
	case StateSubmitting:
		return httperr.ErrBusiness("submission_in_progress")
	}
	return nil
}

// CanSubmit define se o formulário pode ser enviado
func (f *Form) CanSubmit() error {
	switch f.State {
	case StateSlotsLoaded, StateFailed:
		return nil
	case StateSucceeded:
		return httperr.ErrBusiness("form_completed")
	case StateSubmitting:
		return httperr.ErrBusiness("submission_in_progress")
	default:
		return httperr.ErrBusiness("slots_not_loaded")
	}
}

// ===============================
// Transitions
// ===============================

// Reset returns the form to idle keeping the raw selection.
func (f *Form) Reset(service ServiceKind, date string, now time.Time) {
	f.State = StateIdle
	f.Service = service
	f.Date = date
	f.Slots = nil
	f.LastError = ""
	f.UpdatedAt = now
}

// LoadSlots marks every slot whose label is in booked.
func (f *Form) LoadSlots(
	service ServiceKind,
	date string,
	slots []TimeSlot,
	booked map[string]struct{},
	now time.Time,
) {
	options := make([]SlotOption, 0, len(slots))
	for _, s := range slots {
		label := s.Label()
		_, taken := booked[label]
		options = append(options, SlotOption{
			TimeSlot: s,
			Label:    label,
			Booked:   taken,
		})
	}

	f.State = StateSlotsLoaded
	f.Service = service
	f.Date = date
	f.Slots = options
	f.LastError = ""
	f.UpdatedAt = now
}

func (f *Form) BeginSubmit(name, phone, slotLabel string, now time.Time) {
	f.State = StateSubmitting
	f.Name = name
	f.Phone = phone
	f.SlotLabel = slotLabel
	f.UpdatedAt = now
}

// Fail leaves the form editable so the customer may retry.
func (f *Form) Fail(code string, now time.Time) {
	f.State = StateFailed
	f.LastError = code
	f.UpdatedAt = now
}

func (f *Form) Succeed(warning string, now time.Time) {
	f.State = StateSucceeded
	f.Warning = warning
	f.LastError = ""
	f.UpdatedAt = now
}

// ===============================
// Queries
// ===============================

func (f *Form) AvailableCount() int {
	n := 0
	for _, s := range f.Slots {
		if !s.Booked {
			n++
		}
	}
	return n
}

func (f *Form) DayFull() bool {
	return len(f.Slots) > 0 && f.AvailableCount() == 0
}

func (f *Form) FindSlot(label string) (SlotOption, bool) {
	for _, s := range f.Slots {
		if s.Label == label {
			return s, true
		}
	}
	return SlotOption{}, false
}
