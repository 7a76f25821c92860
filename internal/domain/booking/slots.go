package booking

import (
	"fmt"
	"time"
)

const labelSeparator = " – "

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Label is the slot identity used against booked rows, e.g. "10:00 – 10:20".
func (s TimeSlot) Label() string {
	return s.Start + labelSeparator + s.End
}

func hm(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func slotFromMinutes(start, end int) TimeSlot {
	return TimeSlot{Start: hm(start), End: hm(end)}
}

var haircutSlots = []TimeSlot{
	slotFromMinutes(10*60, 11*60+30),
	slotFromMinutes(11*60+30, 13*60),
	slotFromMinutes(14*60, 15*60+30),
	slotFromMinutes(15*60+30, 17*60),
}

const (
	beardDayStart   = 10 * 60
	beardDayEnd     = 18 * 60
	beardStep       = 20
	beardLunchStart = 12 * 60
	beardLunchEnd   = 13*60 + 30
)

func beardSlots() []TimeSlot {
	var slots []TimeSlot
	for mins := beardDayStart; mins < beardDayEnd; mins += beardStep {
		// almoço
		if mins >= beardLunchStart && mins < beardLunchEnd {
			continue
		}
		slots = append(slots, slotFromMinutes(mins, mins+beardStep))
	}
	return slots
}

// GenerateSlots returns the ordered slots offered for service on date.
// today is the current calendar day in the shop timezone; only its date
// part is compared.
func GenerateSlots(service ServiceKind, date, today time.Time) ([]TimeSlot, error) {
	if !service.Valid() {
		return nil, ErrUnknownService
	}

	if DateOnly(date).Before(DateOnly(today)) {
		return nil, &InvalidDayError{Reason: ReasonPastDate, Date: DateOnly(date)}
	}

	weekday := date.Weekday()
	if !service.AllowsWeekday(weekday) {
		return nil, &InvalidDayError{
			Reason:   ReasonWrongWeekday,
			Date:     DateOnly(date),
			Service:  service,
			Weekday:  weekday.String(),
			Required: service.Info().RequiredDays,
		}
	}

	switch service {
	case ServiceHaircut:
		out := make([]TimeSlot, len(haircutSlots))
		copy(out, haircutSlots)
		return out, nil
	default:
		return beardSlots(), nil
	}
}

// DateOnly truncates t to midnight, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
