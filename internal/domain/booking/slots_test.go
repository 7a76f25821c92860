package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bishkek = time.FixedZone("KGT", 6*60*60)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, bishkek)
}

// 2026-10-16 is a Friday.
var (
	friday   = day(2026, time.October, 16)
	saturday = day(2026, time.October, 17)
	sunday   = day(2026, time.October, 18)
	monday   = day(2026, time.October, 19)
)

func labels(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Label())
	}
	return out
}

func TestGenerateSlots_HaircutWeekend(t *testing.T) {
	want := []string{
		"10:00 – 11:30",
		"11:30 – 13:00",
		"14:00 – 15:30",
		"15:30 – 17:00",
	}

	for _, d := range []time.Time{saturday, sunday} {
		slots, err := GenerateSlots(ServiceHaircut, d, friday)
		require.NoError(t, err)
		assert.Equal(t, want, labels(slots), d.Weekday().String())
	}
}

func TestGenerateSlots_HaircutReturnsCopy(t *testing.T) {
	slots, err := GenerateSlots(ServiceHaircut, saturday, friday)
	require.NoError(t, err)
	slots[0].Start = "00:00"

	again, err := GenerateSlots(ServiceHaircut, saturday, friday)
	require.NoError(t, err)
	assert.Equal(t, "10:00", again[0].Start)
}

func TestGenerateSlots_BeardFriday(t *testing.T) {
	slots, err := GenerateSlots(ServiceBeard, friday, friday)
	require.NoError(t, err)
	require.Len(t, slots, 19)

	got := labels(slots)
	assert.Equal(t, "10:00 – 10:20", got[0])
	assert.Equal(t, "11:40 – 12:00", got[5])
	assert.Equal(t, "13:40 – 14:00", got[6])
	assert.Equal(t, "17:40 – 18:00", got[len(got)-1])

	for _, s := range slots {
		assert.NotContains(t, []string{"12:00", "12:20", "12:40", "13:00", "13:20"}, s.Start)
		assert.True(t, s.Start < s.End, s.Label())
	}

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start < slots[i].Start, "slots must be ordered")
	}
}

func TestGenerateSlots_WrongWeekday(t *testing.T) {
	tests := []struct {
		name     string
		service  ServiceKind
		date     time.Time
		weekday  string
		required string
	}{
		{"haircut on friday", ServiceHaircut, friday, "Friday", "Saturday/Sunday"},
		{"haircut on monday", ServiceHaircut, monday, "Monday", "Saturday/Sunday"},
		{"beard on saturday", ServiceBeard, saturday, "Saturday", "Friday"},
		{"beard on monday", ServiceBeard, monday, "Monday", "Friday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.service, tt.date, friday)
			assert.Nil(t, slots)

			var dayErr *InvalidDayError
			require.True(t, errors.As(err, &dayErr))
			assert.Equal(t, ReasonWrongWeekday, dayErr.Reason)
			assert.Equal(t, tt.weekday, dayErr.Weekday)
			assert.Equal(t, tt.required, dayErr.Required)
			assert.Equal(t, tt.service, dayErr.Service)
		})
	}
}

func TestGenerateSlots_PastDate(t *testing.T) {
	today := day(2026, time.October, 20)

	slots, err := GenerateSlots(ServiceHaircut, saturday, today)
	assert.Nil(t, slots)

	var dayErr *InvalidDayError
	require.True(t, errors.As(err, &dayErr))
	assert.Equal(t, ReasonPastDate, dayErr.Reason)
	assert.Equal(t, saturday, dayErr.Date)
}

func TestGenerateSlots_TodayIsAllowed(t *testing.T) {
	// later in the same day must not count as past
	now := friday.Add(17 * time.Hour)

	slots, err := GenerateSlots(ServiceBeard, friday, now)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestGenerateSlots_PastCheckedBeforeWeekday(t *testing.T) {
	_, err := GenerateSlots(ServiceBeard, monday, day(2026, time.October, 25))

	var dayErr *InvalidDayError
	require.True(t, errors.As(err, &dayErr))
	assert.Equal(t, ReasonPastDate, dayErr.Reason)
}

func TestGenerateSlots_UnknownService(t *testing.T) {
	_, err := GenerateSlots(ServiceKind("massage"), friday, friday)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func minutesOf(t *testing.T, hhmm string) int {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return parsed.Hour()*60 + parsed.Minute()
}

func TestGenerateSlots_BeardSlotsAreTwentyMinutes(t *testing.T) {
	slots, err := GenerateSlots(ServiceBeard, friday, friday)
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, 20, minutesOf(t, s.End)-minutesOf(t, s.Start), s.Label())
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	for _, tc := range []struct {
		service ServiceKind
		date    time.Time
	}{
		{ServiceBeard, friday},
		{ServiceHaircut, sunday},
	} {
		first, err := GenerateSlots(tc.service, tc.date, friday)
		require.NoError(t, err)
		second, err := GenerateSlots(tc.service, tc.date, friday)
		require.NoError(t, err)

		assert.Equal(t, first, second, string(tc.service))
	}
}
