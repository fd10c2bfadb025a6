package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	cases := map[string]Frequency{
		"weekly":    FrequencyWeekly,
		"Quincenal": FrequencyBiweekly,
		"monthly":   FrequencyMonthly,
		"puntual":   FrequencyOneOff,
		" one_off ": FrequencyOneOff,
	}
	for in, want := range cases {
		got, err := ParseFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Miércoles")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	d, err = ParseWeekday("friday")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, d)
	assert.Equal(t, "friday", WeekdayName(d))

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func TestParseQuoteStatus(t *testing.T) {
	s, err := ParseQuoteStatus("SENT")
	require.NoError(t, err)
	assert.Equal(t, QuoteSent, s)

	_, err = ParseQuoteStatus("approved")
	assert.ErrorIs(t, err, ErrValidation)
}
