package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Bishkek"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock gives the shop's notion of "now".
type Clock interface {
	Now() time.Time
}

type shopClock struct {
	loc *time.Location
}

func NewClock(tz string) Clock {
	return shopClock{loc: Location(tz)}
}

func (c shopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today is midnight of the current day in the clock's location.
func Today(c Clock) time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}
