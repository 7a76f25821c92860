package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// CLOCK
// ======================================================

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var shopTZ = time.FixedZone("KGT", 6*60*60)

// quinta-feira, 2026-10-15 09:00
var thursdayMorning = fixedClock{now: time.Date(2026, time.October, 15, 9, 0, 0, 0, shopTZ)}

const (
	nextFriday   = "2026-10-16"
	nextSaturday = "2026-10-17"
)

// ======================================================
// FORM STORE
// ======================================================

type memForms struct {
	mu     sync.Mutex
	forms  map[string][]byte
	locked map[string]bool
	saves  int
}

func newMemForms() *memForms {
	return &memForms{
		forms:  map[string][]byte{},
		locked: map[string]bool{},
	}
}

func (m *memForms) GetForm(ctx context.Context, id string) (*domain.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.forms[id]
	if !ok {
		return nil, domain.ErrFormNotFound
	}
	var f domain.Form
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *memForms) SaveForm(ctx context.Context, f *domain.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	m.forms[f.ID] = raw
	m.saves++
	return nil
}

func (m *memForms) LockSubmission(_ context.Context, formID string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked[formID] {
		return nil, domain.ErrSubmissionInProgress
	}
	m.locked[formID] = true
	return func() {
		m.mu.Lock()
		delete(m.locked, formID)
		m.mu.Unlock()
	}, nil
}

func (m *memForms) put(t *testing.T, f *domain.Form) {
	t.Helper()
	require.NoError(t, m.SaveForm(context.Background(), f))
}

func (m *memForms) get(t *testing.T, id string) *domain.Form {
	t.Helper()
	f, err := m.GetForm(context.Background(), id)
	require.NoError(t, err)
	return f
}

// ======================================================
// RESERVATION STORE
// ======================================================

type fakeStore struct {
	mu        sync.Mutex
	booked    map[string][]string
	lookupErr error
	appendErr error
	onAppend  func()
	appended  []domain.Reservation
}

func (s *fakeStore) ListBookedTimes(_ context.Context, date string) ([]string, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.booked[date], nil
}

func (s *fakeStore) AppendReservation(ctx context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.onAppend != nil {
		s.onAppend()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, r)
	return nil
}

// ======================================================
// RELAY
// ======================================================

type fakeRelay struct {
	err      error
	onNotify func()
	sent     []domain.Notification
}

func (r *fakeRelay) Notify(ctx context.Context, n domain.Notification) error {
	if r.onNotify != nil {
		r.onNotify()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.sent = append(r.sent, n)
	return r.err
}

// ======================================================
// ARCHIVE / LEDGER
// ======================================================

type fakeArchive struct {
	err  error
	keys []string
}

func (a *fakeArchive) StoreProof(ctx context.Context, formID string, _ *domain.Proof) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.err != nil {
		return "", a.err
	}
	key := "proofs/" + formID + ".webp"
	a.keys = append(a.keys, key)
	return key, nil
}

type fakeLedger struct {
	err     error
	records []models.BookingRecord
}

func (l *fakeLedger) RecordBooking(ctx context.Context, rec *models.BookingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.err != nil {
		return l.err
	}
	rec.ID = uint(len(l.records) + 1)
	l.records = append(l.records, *rec)
	return nil
}

func (l *fakeLedger) ListBookingsForDay(_ context.Context, start, end time.Time) ([]models.BookingRecord, error) {
	if l.err != nil {
		return nil, l.err
	}
	var out []models.BookingRecord
	for _, r := range l.records {
		if !r.BookingDate.Before(start) && r.BookingDate.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ======================================================
// HELPERS
// ======================================================

func pngProof(t *testing.T, w, h int) *bytes.Reader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

var (
	_ domain.FormStore        = (*memForms)(nil)
	_ domain.ReservationStore = (*fakeStore)(nil)
	_ domain.Relay            = (*fakeRelay)(nil)
	_ domain.ProofArchive     = (*fakeArchive)(nil)
	_ domain.Ledger           = (*fakeLedger)(nil)
)
