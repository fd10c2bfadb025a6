package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
)

// AgendaInput describes the recurrence of one contract.
type AgendaInput struct {
	Start     time.Time
	End       time.Time
	Day       time.Weekday
	Frequency domain.Frequency
}

// AgendaDates returns the visit dates of a contract between Start and End,
// both inclusive, at UTC midnight and in ascending order.
//
//   - weekly: every Day on or after Start.
//   - biweekly: every second Day, counting from the first one on or after Start.
//   - monthly: the first Day of each month, never before Start.
//   - one_off: only the first Day on or after Start.
func AgendaDates(in AgendaInput) ([]time.Time, error) {
	start, end := truncateDay(in.Start), truncateDay(in.End)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: agenda end %s is before start %s",
			domain.ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	first := nextWeekday(start, in.Day)
	if first.After(end) {
		return nil, nil
	}

	var dates []time.Time
	switch in.Frequency {
	case domain.FrequencyWeekly:
		dates = every(first, end, 7)
	case domain.FrequencyBiweekly:
		dates = every(first, end, 14)
	case domain.FrequencyMonthly:
		dates = monthly(start, end, in.Day)
	case domain.FrequencyOneOff:
		dates = []time.Time{first}
	default:
		return nil, fmt.Errorf("%w: unknown frequency %q", domain.ErrValidation, in.Frequency)
	}
	return dates, nil
}

// MissingDates returns the dates in want that are not in have, by calendar day.
func MissingDates(want, have []time.Time) []time.Time {
	seen := make(map[string]bool, len(have))
	for _, d := range have {
		seen[d.Format("2006-01-02")] = true
	}
	var out []time.Time
	for _, d := range want {
		if !seen[d.Format("2006-01-02")] {
			out = append(out, d)
		}
	}
	return out
}

func every(first, end time.Time, stepDays int) []time.Time {
	var out []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, stepDays) {
		out = append(out, d)
	}
	return out
}

func monthly(start, end time.Time, day time.Weekday) []time.Time {
	var out []time.Time
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !month.After(end) {
		from := month
		if from.Before(start) {
			from = start
		}
		d := nextWeekday(from, day)
		if d.Month() == month.Month() && !d.After(end) {
			out = append(out, d)
		}
		month = month.AddDate(0, 1, 0)
	}
	return out
}

// nextWeekday returns the first date on or after d that falls on day.
func nextWeekday(d time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
