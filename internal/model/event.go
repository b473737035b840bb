package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingTitle = errors.New("model: event title is required")
	ErrMissingDate  = errors.New("model: event date is required")
	ErrMissingTime  = errors.New("model: event time is required")
	ErrBadDate      = errors.New("model: event date is not a valid YYYY-MM-DD value")
	ErrBadTime      = errors.New("model: event time is not a valid HH:MM value")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// RetentionWindow is how long an event survives after creation before it is
// silently evicted on load.
const RetentionWindow = 30 * 24 * time.Hour

// Event is a single reminder-worthy entry. ID and CreatedAt are epoch
// milliseconds and never change after creation. Date and Time are wall-clock
// strings with no zone; the scheduled instant is derived in the local zone of
// the running instance.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"createdAt"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(e.Time) == "" {
		return ErrMissingTime
	}
	if _, err := time.ParseInLocation(DateLayout, e.Date, time.Local); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, e.Date)
	}
	if _, err := time.ParseInLocation(TimeLayout, e.Time, time.Local); err != nil {
		return fmt.Errorf("%w: %q", ErrBadTime, e.Time)
	}
	return nil
}

// ScheduledAt combines Date and Time into an instant in the given location.
func (e Event) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+"T"+TimeLayout, e.Date+"T"+e.Time, loc)
}

// Created returns CreatedAt as a time value.
func (e Event) Created() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// Expired reports whether the event has outlived the retention window at now.
func (e Event) Expired(now time.Time) bool {
	if e.CreatedAt == 0 {
		return false
	}
	return now.Sub(e.Created()) > RetentionWindow
}
