package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DeviceInfo describes the device a staff member scanned a ticket with
type DeviceInfo struct {
	UserAgent  string  `json:"user_agent,omitempty"`
	Platform   string  `json:"platform,omitempty"`
	AppVersion *string `json:"app_version,omitempty"`
}

// Value implements driver.Valuer so DeviceInfo is stored as JSONB
func (d DeviceInfo) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal device info: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner
func (d *DeviceInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = DeviceInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported device info type %T", src)
	}
}

// CheckIn records a ticket scan at the door
type CheckIn struct {
	ID          string      `json:"id" db:"id"`
	TicketID    string      `json:"ticket_id" db:"ticket_id"`
	EventID     string      `json:"event_id" db:"event_id"`
	CheckedInBy string      `json:"checked_in_by" db:"checked_in_by"`
	CheckedInAt time.Time   `json:"checked_in_at" db:"checked_in_at"`
	DeviceInfo  *DeviceInfo `json:"device_info,omitempty" db:"device_info"`
}

// CheckInStats summarizes attendance for an event
type CheckInStats struct {
	TotalTickets int     `json:"total_tickets"`
	CheckedIn    int     `json:"checked_in"`
	Remaining    int     `json:"remaining"`
	Percentage   float64 `json:"percentage"`
}

// NewCheckInStats derives the remaining count and percentage from the totals
func NewCheckInStats(total, checkedIn int) CheckInStats {
	stats := CheckInStats{TotalTickets: total, CheckedIn: checkedIn}
	if total > checkedIn {
		stats.Remaining = total - checkedIn
	}
	if total > 0 {
		stats.Percentage = float64(checkedIn) * 100 / float64(total)
	}
	return stats
}
