package utils

import (
	"fmt"
	"time"

	"naija-events/internal/models"
)

// EventStatus is the phase of an event relative to the current time
type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOngoing  EventStatus = "ongoing"
	EventEnded    EventStatus = "ended"
)

// GetEventStatus classifies an event relative to now. Both bounds are inclusive
// for ongoing. If either timestamp cannot be parsed the event is reported as
// upcoming so it stays visible to attendees.
func GetEventStatus(now time.Time, start, end string) EventStatus {
	startTime, err := models.ParseTimestamp(start)
	if err != nil {
		return EventUpcoming
	}
	endTime, err := models.ParseTimestamp(end)
	if err != nil {
		return EventUpcoming
	}
	return EventStatusBetween(now, startTime, endTime)
}

// EventStatusBetween classifies an event with already parsed bounds
func EventStatusBetween(now, start, end time.Time) EventStatus {
	switch {
	case now.Before(start):
		return EventUpcoming
	case !now.After(end):
		return EventOngoing
	default:
		return EventEnded
	}
}

// CalculateEventDuration returns a human readable, floored duration such as
// "2 days", "1 hour" or "45 minutes"
func CalculateEventDuration(start, end string) string {
	startTime, err := models.ParseTimestamp(start)
	if err != nil {
		return "Invalid dates"
	}
	endTime, err := models.ParseTimestamp(end)
	if err != nil {
		return "Invalid dates"
	}
	return FormatDuration(endTime.Sub(startTime))
}

// FormatDuration renders d in the largest whole unit of days, hours or minutes
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "Invalid dates"
	}

	hours := int(d / time.Hour)
	days := hours / 24

	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	default:
		return plural(int(d/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatDate renders a timestamp string as "March 15, 2024", or "Invalid date"
func FormatDate(s string) string {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return "Invalid date"
	}
	return t.Format("January 2, 2006")
}

// FormatDateTime renders a timestamp string as "March 15, 2024 9:00 AM", or "Invalid date"
func FormatDateTime(s string) string {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return "Invalid date"
	}
	return t.Format("January 2, 2006 3:04 PM")
}
