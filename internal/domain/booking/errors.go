package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var ErrUnknownService = httperr.ErrBusiness("unknown_service")

type InvalidDayReason string

const (
	ReasonPastDate     InvalidDayReason = "past_date"
	ReasonWrongWeekday InvalidDayReason = "wrong_weekday"
)

// InvalidDayError rejects a date for a service.
type InvalidDayError struct {
	Reason   InvalidDayReason
	Date     time.Time
	Service  ServiceKind
	Weekday  string
	Required string
}

func (e *InvalidDayError) Error() string {
	if e.Reason == ReasonPastDate {
		return fmt.Sprintf("cannot book in the past (%s)", e.Date.Format(DateLayout))
	}
	return fmt.Sprintf(
		"invalid day for %s: only %s allowed (%s selected)",
		e.Service, e.Required, e.Weekday,
	)
}

// RelayRejectedError means the relay answered but reported a failure.
type RelayRejectedError struct {
	Reason string
}

func (e *RelayRejectedError) Error() string {
	if e.Reason == "" {
		return "relay: notification rejected"
	}
	return "relay: notification rejected: " + e.Reason
}
