package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fmtDates(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

func TestAgendaDates(t *testing.T) {
	// 2025-03-01 is a Saturday.
	start, end := day(2025, 3, 1), day(2025, 4, 30)

	cases := []struct {
		name string
		freq domain.Frequency
		want []string
	}{
		{"weekly", domain.FrequencyWeekly, []string{
			"2025-03-04", "2025-03-11", "2025-03-18", "2025-03-25",
			"2025-04-01", "2025-04-08", "2025-04-15", "2025-04-22", "2025-04-29",
		}},
		{"biweekly", domain.FrequencyBiweekly, []string{
			"2025-03-04", "2025-03-18", "2025-04-01", "2025-04-15", "2025-04-29",
		}},
		{"monthly", domain.FrequencyMonthly, []string{"2025-03-04", "2025-04-01"}},
		{"one_off", domain.FrequencyOneOff, []string{"2025-03-04"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AgendaDates(AgendaInput{Start: start, End: end, Day: time.Tuesday, Frequency: tc.freq})
			require.NoError(t, err)
			assert.Equal(t, tc.want, fmtDates(got))
		})
	}
}

func TestAgendaDates_MonthlyNeverBeforeStart(t *testing.T) {
	// First Monday of June 2025 is the 2nd; the contract starts on the 10th.
	got, err := AgendaDates(AgendaInput{
		Start: day(2025, 6, 10), End: day(2025, 8, 31),
		Day: time.Monday, Frequency: domain.FrequencyMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-16", "2025-07-07", "2025-08-04"}, fmtDates(got))
}

func TestAgendaDates_EndInclusive(t *testing.T) {
	got, err := AgendaDates(AgendaInput{
		Start: day(2025, 3, 4), End: day(2025, 3, 11),
		Day: time.Tuesday, Frequency: domain.FrequencyWeekly,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-04", "2025-03-11"}, fmtDates(got))
}

func TestAgendaDates_NoMatchingDay(t *testing.T) {
	got, err := AgendaDates(AgendaInput{
		Start: day(2025, 3, 5), End: day(2025, 3, 7),
		Day: time.Tuesday, Frequency: domain.FrequencyWeekly,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAgendaDates_Invalid(t *testing.T) {
	_, err := AgendaDates(AgendaInput{Start: day(2025, 3, 5), End: day(2025, 3, 1), Frequency: domain.FrequencyWeekly})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = AgendaDates(AgendaInput{Start: day(2025, 3, 1), End: day(2025, 3, 31), Frequency: "yearly"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMissingDates(t *testing.T) {
	want := []time.Time{day(2025, 3, 4), day(2025, 3, 11), day(2025, 3, 18)}
	have := []time.Time{day(2025, 3, 11)}
	assert.Equal(t, []string{"2025-03-04", "2025-03-18"}, fmtDates(MissingDates(want, have)))
	assert.Empty(t, MissingDates(want, want))
}
