package domain

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
)

// NextDueDate returns anchor advanced by one period of f.
//
// Calendar month and year steps clamp to the last day of the target month,
// so Jan 31 + monthly is Feb 28 (or 29) and Feb 29 + yearly is Feb 28. The
// time of day and location of anchor are preserved.
func NextDueDate(anchor time.Time, f Frequency) (time.Time, error) {
	switch f {
	case Weekly:
		return anchor.AddDate(0, 0, 7), nil
	case BiWeekly:
		return anchor.AddDate(0, 0, 14), nil
	case Monthly:
		return addMonthsClamped(anchor, 1), nil
	case Quarterly:
		return addMonthsClamped(anchor, 3), nil
	case Yearly:
		return addMonthsClamped(anchor, 12), nil
	default:
		return time.Time{}, apperrors.NewValidationError("unknown frequency %q", f)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// UpdateNextDueDate advances NextDueDate by one period. The anchor is the
// current NextDueDate when set, otherwise Date, otherwise now, so repeated
// calls walk forward one period at a time. It reports false and leaves the
// record untouched when the record is not recurring.
func (m *MoneyRecord) UpdateNextDueDate(now time.Time) (bool, error) {
	if !m.IsRecurring || m.Frequency == nil {
		return false, nil
	}

	anchor := now
	switch {
	case m.NextDueDate != nil:
		anchor = *m.NextDueDate
	case !m.Date.IsZero():
		anchor = m.Date
	}

	next, err := NextDueDate(anchor, *m.Frequency)
	if err != nil {
		return false, err
	}
	m.NextDueDate = &next
	return true, nil
}
