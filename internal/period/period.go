// Package period resolves the dashboard's symbolic periods (day, week,
// month, year, custom, all) into concrete date ranges relative to a caller
// supplied reference date.
package period

import (
	"net/http"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
)

const (
	Day    = "day"
	Week   = "week"
	Month  = "month"
	Year   = "year"
	Custom = "custom"
	All    = "all"
)

const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
)

// dateLayout is the format custom bounds arrive in from the dashboard.
const dateLayout = "2006-01-02"

type Range struct {
	Start time.Time
	End   time.Time
}

// Materialize returns the widest possible interval, used when a consumer
// needs a concrete range for an unfiltered ("all") query.
func Materialize(now time.Time) Range {
	return Range{Start: time.Unix(0, 0).In(now.Location()), End: now}
}

// Resolve maps a period token and reference date to a date interval.
// ok is false when no filtering should be applied: the period is "all",
// unknown, or "custom" with a missing bound.
func Resolve(period string, ref time.Time, customStart, customEnd string) (Range, bool) {
	switch period {
	case Day:
		return Range{Start: startOfDay(ref), End: endOfDay(ref)}, true
	case Week:
		// back to the most recent Sunday, keeping ref's clock time as the end
		start := startOfDay(ref).AddDate(0, 0, -int(ref.Weekday()))
		return Range{Start: start, End: ref}, true
	case Month:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		return Range{Start: first, End: endOfDay(last)}, true
	case Year:
		first := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		last := time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location())
		return Range{Start: first, End: endOfDay(last)}, true
	case Custom:
		if customStart == "" || customEnd == "" {
			return Range{}, false
		}
		start, err := time.ParseInLocation(dateLayout, customStart, ref.Location())
		if err != nil {
			return Range{}, false
		}
		end, err := time.ParseInLocation(dateLayout, customEnd, ref.Location())
		if err != nil {
			return Range{}, false
		}
		return Range{Start: startOfDay(start), End: endOfDay(end)}, true
	default:
		// "all" and anything unrecognized means no filtering
		return Range{}, false
	}
}

// FromQuery resolves the filter query params shared by the list endpoints.
// An explicit period wins over raw dates; with no period, both dates must be
// present to filter. ok is false when the consumer should skip filtering.
func FromQuery(periodTok, refDate, startDate, endDate string, now time.Time) (Range, bool) {
	ref := now
	if refDate != "" {
		if parsed, err := time.ParseInLocation(dateLayout, refDate, now.Location()); err == nil {
			ref = parsed
		}
	}

	if periodTok == "" {
		if startDate == "" || endDate == "" {
			return Range{}, false
		}
		return Resolve(Custom, ref, startDate, endDate)
	}

	return Resolve(periodTok, ref, startDate, endDate)
}

// Navigate steps the reference date forward or backward by one unit of the
// active period. Stepping a month from a month-end date clamps to the last
// valid day of the target month instead of spilling into the month after.
func Navigate(period string, ref time.Time, direction string) (time.Time, error) {
	step := 1
	if direction == DirectionPrevious {
		step = -1
	} else if direction != DirectionNext {
		return time.Time{}, apperror.New(apperror.CodeInvalidInput, "Direction must be next or previous", http.StatusBadRequest)
	}

	switch period {
	case Day:
		return ref.AddDate(0, 0, step), nil
	case Month:
		target := time.Date(ref.Year(), ref.Month()+time.Month(step), 1, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
		day := ref.Day()
		if last := daysIn(target.Year(), target.Month()); day > last {
			day = last
		}
		return time.Date(target.Year(), target.Month(), day, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location()), nil
	case Year:
		target := ref.AddDate(step, 0, 0)
		// Feb 29 in a non-leap year rolls over; clamp it back
		if target.Month() != ref.Month() {
			target = target.AddDate(0, 0, -1)
		}
		return target, nil
	case Week:
		// week is a rolling window anchored on today; stepping it is a no-op
		return ref, nil
	default:
		return time.Time{}, apperror.New(apperror.CodeInvalidState, "Navigation is not available for this period", http.StatusBadRequest)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
