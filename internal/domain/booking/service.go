package booking

import (
	"strings"
	"time"
)

// ===============================
// Service Kind
// ===============================

type ServiceKind string

const (
	ServiceHaircut ServiceKind = "haircut"
	ServiceBeard   ServiceKind = "beard"
)

// ServiceInfo holds the presentation values and day restriction of a service.
type ServiceInfo struct {
	Kind         ServiceKind    `json:"kind"`
	Label        string         `json:"label"`
	Price        string         `json:"price"`
	Weekdays     []time.Weekday `json:"-"`
	RequiredDays string         `json:"required_days"`
}

var catalog = map[ServiceKind]ServiceInfo{
	ServiceHaircut: {
		Kind:         ServiceHaircut,
		Label:        "Men's Haircut",
		Price:        "400 KGS",
		Weekdays:     []time.Weekday{time.Saturday, time.Sunday},
		RequiredDays: "Saturday/Sunday",
	},
	ServiceBeard: {
		Kind:         ServiceBeard,
		Label:        "Beard Trim + Line-up",
		Price:        "100 KGS",
		Weekdays:     []time.Weekday{time.Friday},
		RequiredDays: "Friday",
	},
}

// ParseServiceKind accepts the wire value of a service.
func ParseServiceKind(raw string) (ServiceKind, error) {
	kind := ServiceKind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := catalog[kind]; !ok {
		return "", ErrUnknownService
	}
	return kind, nil
}

func (k ServiceKind) Info() ServiceInfo {
	return catalog[k]
}

func (k ServiceKind) Valid() bool {
	_, ok := catalog[k]
	return ok
}

func (k ServiceKind) AllowsWeekday(day time.Weekday) bool {
	for _, d := range catalog[k].Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Catalog lists the offered services in a stable order.
func Catalog() []ServiceInfo {
	return []ServiceInfo{
		catalog[ServiceHaircut],
		catalog[ServiceBeard],
	}
}
