package model

import "fmt"

// Weekday is the closed set of keys used for working hours.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the days in display order, Monday first.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Label returns the Turkish display name.
func (d Weekday) Label() string {
	switch d {
	case Monday:
		return "Pazartesi"
	case Tuesday:
		return "Salı"
	case Wednesday:
		return "Çarşamba"
	case Thursday:
		return "Perşembe"
	case Friday:
		return "Cuma"
	case Saturday:
		return "Cumartesi"
	case Sunday:
		return "Pazar"
	default:
		return string(d)
	}
}

func ParseWeekday(raw string) (Weekday, error) {
	for _, d := range AllWeekdays {
		if string(d) == raw {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

// DefaultWorkingHours is Monday to Friday 09:00-18:00 with the weekend closed.
// Closed days keep the same clock times so reopening them needs no input.
func DefaultWorkingHours() WorkingHours {
	wh := make(WorkingHours, len(AllWeekdays))
	for _, d := range AllWeekdays {
		wh[d] = DayHours{
			IsOpen:    d != Saturday && d != Sunday,
			OpenTime:  "09:00",
			CloseTime: "18:00",
		}
	}
	return wh
}
