package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type submitFixture struct {
	uc      *SubmitBooking
	forms   *memForms
	store   *fakeStore
	relay   *fakeRelay
	archive *fakeArchive
	ledger  *fakeLedger
	form    *domain.Form
}

func newSubmitFixture(t *testing.T, booked ...string) *submitFixture {
	t.Helper()

	f := &submitFixture{
		forms:   newMemForms(),
		store:   &fakeStore{},
		relay:   &fakeRelay{},
		archive: &fakeArchive{},
		ledger:  &fakeLedger{},
	}

	form := domain.NewForm("form-1", thursdayMorning.now)
	slots, err := domain.GenerateSlots(domain.ServiceBeard, thursdayMorning.now.AddDate(0, 0, 1), thursdayMorning.now)
	require.NoError(t, err)

	set := map[string]struct{}{}
	for _, b := range booked {
		set[b] = struct{}{}
	}
	form.LoadSlots(domain.ServiceBeard, nextFriday, slots, set, thursdayMorning.now)
	f.forms.put(t, form)
	f.form = form

	f.uc = NewSubmitBooking(SubmitBookingDeps{
		Forms:           f.forms,
		Store:           f.store,
		Relay:           f.relay,
		Archive:         f.archive,
		Ledger:          f.ledger,
		Clock:           thursdayMorning,
		PhoneRegion:     "KG",
		FallbackContact: "WhatsApp +996 552 766 222",
	})
	return f
}

func (f *submitFixture) input(t *testing.T) SubmitBookingInput {
	return SubmitBookingInput{
		FormID:    f.form.ID,
		Name:      "  Aibek ",
		Phone:     "0552 766 222",
		SlotLabel: "10:20 – 10:40",
		Proof:     pngProof(t, 20, 10),
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	f := newSubmitFixture(t)

	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)

	assert.Empty(t, res.Warning)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
	assert.Equal(t, domain.StateSucceeded, f.forms.get(t, f.form.ID).State)

	require.Len(t, f.store.appended, 1)
	r := f.store.appended[0]
	assert.Equal(t, nextFriday, r.Date)
	assert.Equal(t, "10:20 – 10:40", r.Time)
	assert.Equal(t, "Aibek", r.Name)
	assert.Equal(t, "+996552766222", r.Phone)
	assert.Equal(t, domain.ServiceBeard, r.Service)

	require.Len(t, f.relay.sent, 1)
	n := f.relay.sent[0]
	assert.Equal(t, "Beard Trim + Line-up", n.Service)
	assert.Equal(t, "100 KGS", n.Price)
	assert.NotEmpty(t, n.Image)

	require.Len(t, f.ledger.records, 1)
	assert.True(t, f.ledger.records[0].Notified)
	assert.Equal(t, "proofs/form-1.webp", f.ledger.records[0].ProofKey)
	assert.Equal(t, nextFriday, f.ledger.records[0].BookingDate.Format(domain.DateLayout))
}

func TestSubmitBooking_RelayRejectedStillSucceeds(t *testing.T) {
	f := newSubmitFixture(t)
	f.relay.err = &domain.RelayRejectedError{Reason: "quota"}

	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)

	assert.Equal(t, WarningRelayRejected, res.Warning)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
	assert.Len(t, f.store.appended, 1)

	require.Len(t, f.ledger.records, 1)
	assert.False(t, f.ledger.records[0].Notified)
	assert.Contains(t, f.ledger.records[0].NotifyError, "quota")
}

func TestSubmitBooking_RelayUnreachableStillSucceeds(t *testing.T) {
	f := newSubmitFixture(t)
	f.relay.err = errors.New("dial tcp: connection refused")

	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)

	assert.Contains(t, res.Warning, "WhatsApp +996 552 766 222")
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
}

func TestSubmitBooking_StoreFailureFailsForm(t *testing.T) {
	f := newSubmitFixture(t)
	f.store.appendErr = errors.New("sheetdb 500")

	_, err := f.uc.Execute(context.Background(), f.input(t))
	assert.True(t, httperr.IsBusiness(err, "booking_save_failed"))

	saved := f.forms.get(t, f.form.ID)
	assert.Equal(t, domain.StateFailed, saved.State)
	assert.Equal(t, "booking_save_failed", saved.LastError)

	assert.Empty(t, f.relay.sent)
	assert.Empty(t, f.ledger.records)
}

func TestSubmitBooking_RetryAfterFailure(t *testing.T) {
	f := newSubmitFixture(t)
	f.store.appendErr = errors.New("sheetdb 500")

	_, err := f.uc.Execute(context.Background(), f.input(t))
	require.Error(t, err)

	f.store.appendErr = nil
	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
	assert.Len(t, f.store.appended, 1)
}

func TestSubmitBooking_ImageFailure(t *testing.T) {
	f := newSubmitFixture(t)
	in := f.input(t)
	in.Proof = strings.NewReader("definitely not an image")

	_, err := f.uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "image_processing_failed"))

	assert.Empty(t, f.store.appended)
	assert.Empty(t, f.relay.sent)
	assert.Equal(t, domain.StateFailed, f.forms.get(t, f.form.ID).State)
}

func TestSubmitBooking_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *SubmitBookingInput)
		code   string
	}{
		{"name", func(in *SubmitBookingInput) { in.Name = "   " }, "name_required"},
		{"phone", func(in *SubmitBookingInput) { in.Phone = "" }, "phone_required"},
		{"slot", func(in *SubmitBookingInput) { in.SlotLabel = "" }, "slot_required"},
		{"proof", func(in *SubmitBookingInput) { in.Proof = nil }, "proof_required"},
		{"unknown slot", func(in *SubmitBookingInput) { in.SlotLabel = "12:00 – 12:20" }, "slot_unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmitFixture(t)
			in := f.input(t)
			tt.mutate(&in)

			_, err := f.uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.Empty(t, f.store.appended)
			assert.Equal(t, domain.StateSlotsLoaded, f.forms.get(t, f.form.ID).State)
		})
	}
}

func TestSubmitBooking_NoSlotsLoaded(t *testing.T) {
	f := newSubmitFixture(t)
	f.form.Reset(domain.ServiceBeard, nextFriday, thursdayMorning.now)
	f.forms.put(t, f.form)

	_, err := f.uc.Execute(context.Background(), f.input(t))
	assert.True(t, httperr.IsBusiness(err, "slots_not_loaded"))
}

func TestSubmitBooking_BookedSlotRejected(t *testing.T) {
	f := newSubmitFixture(t, "10:20 – 10:40")

	_, err := f.uc.Execute(context.Background(), f.input(t))
	assert.True(t, httperr.IsBusiness(err, "slot_booked"))
	assert.Empty(t, f.store.appended)
}

func TestSubmitBooking_SecondSubmitRejected(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.input(t))
	assert.True(t, httperr.IsBusiness(err, "form_completed"))
	assert.Len(t, f.store.appended, 1)
}

func TestSubmitBooking_ConcurrentSubmitRejected(t *testing.T) {
	f := newSubmitFixture(t)

	unlock, err := f.forms.LockSubmission(context.Background(), f.form.ID)
	require.NoError(t, err)
	defer unlock()

	_, err = f.uc.Execute(context.Background(), f.input(t))
	assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)
	assert.Empty(t, f.store.appended)
}

func TestSubmitBooking_SideEffectFailuresIgnored(t *testing.T) {
	f := newSubmitFixture(t)
	f.archive.err = errors.New("s3 down")
	f.ledger.err = errors.New("postgres down")

	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
	assert.Empty(t, res.Warning)
}

func TestSubmitBooking_OptionalDepsMayBeNil(t *testing.T) {
	f := newSubmitFixture(t)
	f.uc.Archive = nil
	f.uc.Ledger = nil

	_, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)
}

func TestSubmitBooking_ClientDisconnectAfterCommit(t *testing.T) {
	f := newSubmitFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.relay.onNotify = cancel

	res, err := f.uc.Execute(ctx, f.input(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
	assert.Len(t, f.store.appended, 1)

	saved := f.forms.get(t, f.form.ID)
	assert.Equal(t, domain.StateSucceeded, saved.State)

	require.Len(t, f.relay.sent, 1)
	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, "proofs/form-1.webp", f.ledger.records[0].ProofKey)

	// formulário concluído, não preso em submitting
	_, err = f.uc.Execute(context.Background(), f.input(t))
	assert.True(t, httperr.IsBusiness(err, "form_completed"), "got %v", err)
}

func TestSubmitBooking_ClientDisconnectDuringStoreWrite(t *testing.T) {
	f := newSubmitFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.store.onAppend = cancel

	_, err := f.uc.Execute(ctx, f.input(t))
	assert.True(t, httperr.IsBusiness(err, "booking_save_failed"))

	saved := f.forms.get(t, f.form.ID)
	assert.Equal(t, domain.StateFailed, saved.State)
	assert.Empty(t, f.store.appended)

	f.store.onAppend = nil
	res, err := f.uc.Execute(context.Background(), f.input(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.Form.State)
}

func TestSubmitBooking_LongContactFitsLedger(t *testing.T) {
	f := newSubmitFixture(t)

	contact := "Telegram: @" + strings.Repeat("ж", 60)
	in := f.input(t)
	in.Phone = contact
	in.Name = strings.Repeat("A", 150)

	_, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, f.store.appended, 1)
	assert.Equal(t, contact, f.store.appended[0].Phone)

	require.Len(t, f.ledger.records, 1)
	rec := f.ledger.records[0]
	assert.Equal(t, 50, utf8.RuneCountInString(rec.ClientPhone))
	assert.True(t, utf8.ValidString(rec.ClientPhone))
	assert.Equal(t, 100, utf8.RuneCountInString(rec.ClientName))
}
