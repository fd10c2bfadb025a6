package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestVisitTransitions(t *testing.T) {
	cases := []struct {
		from VisitStatus
		to   VisitStatus
		ok   bool
	}{
		{VisitScheduled, VisitInProgress, true},
		{VisitScheduled, VisitRescheduled, true},
		{VisitScheduled, VisitCancelled, true},
		{VisitScheduled, VisitCompleted, false},
		{VisitRescheduled, VisitRescheduled, true},
		{VisitRescheduled, VisitInProgress, true},
		{VisitInProgress, VisitCompleted, true},
		{VisitInProgress, VisitCancelled, false},
		{VisitCompleted, VisitInProgress, false},
		{VisitCancelled, VisitScheduled, false},
	}
	for _, tc := range cases {
		v := &Visit{Status: tc.from}
		assert.Equal(t, tc.ok, v.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestVisitClose_RequiresDoneTask(t *testing.T) {
	v := &Visit{Status: VisitInProgress}
	err := v.Close(0, "", "crew", testNow)
	assert.ErrorIs(t, err, ErrNoTasksDone)
	assert.Equal(t, VisitInProgress, v.Status)
}

func TestVisitClose_StartsScheduledVisit(t *testing.T) {
	v := &Visit{Status: VisitScheduled}
	require.NoError(t, v.Close(2, "gate was locked", "Ana", testNow))
	assert.Equal(t, VisitCompleted, v.Status)
	assert.Equal(t, "gate was locked", v.CrewObservation)
	assert.Equal(t, "Ana", v.ClosedBy)
	assert.Equal(t, testNow, v.UpdatedAt)
}

func TestVisitClose_CancelledVisit(t *testing.T) {
	v := &Visit{Status: VisitCancelled}
	err := v.Close(1, "", "", testNow)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestVisitReschedule(t *testing.T) {
	v := &Visit{Status: VisitScheduled, Date: testNow, OriginalDate: testNow}
	next := testNow.AddDate(0, 0, 3)
	require.NoError(t, v.Reschedule(next, testNow))
	assert.Equal(t, VisitRescheduled, v.Status)
	assert.Equal(t, next, v.Date)
	assert.Equal(t, testNow, v.OriginalDate)

	err := v.Reschedule(time.Time{}, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVisitIsOpen(t *testing.T) {
	assert.True(t, (&Visit{Status: VisitScheduled}).IsOpen())
	assert.True(t, (&Visit{Status: VisitInProgress}).IsOpen())
	assert.False(t, (&Visit{Status: VisitCompleted}).IsOpen())
	assert.False(t, (&Visit{Status: VisitCancelled}).IsOpen())
}
