package domain

import (
	"fmt"
	"time"
)

// Visit is one scheduled occurrence of a crew working at a client site.
type Visit struct {
	ID              string
	ClientID        string
	ContractID      string
	TeamID          string
	Date            time.Time
	// OriginalDate is the agenda slot the visit was created for. Reschedules
	// move Date and keep OriginalDate.
	OriginalDate    time.Time
	Type            VisitType
	Status          VisitStatus
	CrewObservation string
	ClosedBy        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VisitTaskCompletion records a task marked done when a visit closed. Names
// are copied at close time, so the record survives later contract edits.
type VisitTaskCompletion struct {
	VisitID  string
	TaskID   string
	TaskName string
	PlanName string
}

var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitScheduled:   {VisitInProgress, VisitRescheduled, VisitCancelled},
	VisitRescheduled: {VisitInProgress, VisitRescheduled, VisitCancelled},
	VisitInProgress:  {VisitCompleted},
	VisitCompleted:   {},
	VisitCancelled:   {},
}

func (v *Visit) CanTransitionTo(next VisitStatus) bool {
	for _, s := range visitTransitions[v.Status] {
		if s == next {
			return true
		}
	}
	return false
}

func (v *Visit) transition(next VisitStatus, now time.Time) error {
	if !v.CanTransitionTo(next) {
		return fmt.Errorf("%w: visit %s -> %s", ErrInvalidTransition, v.Status, next)
	}
	v.Status = next
	v.UpdatedAt = now
	return nil
}

// IsOpen reports whether the visit can still be worked on by a crew.
func (v *Visit) IsOpen() bool {
	return v.Status == VisitScheduled || v.Status == VisitRescheduled || v.Status == VisitInProgress
}

func (v *Visit) Start(now time.Time) error {
	return v.transition(VisitInProgress, now)
}

// Reschedule moves the visit to a new date.
func (v *Visit) Reschedule(date time.Time, now time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: reschedule date is required", ErrValidation)
	}
	if err := v.transition(VisitRescheduled, now); err != nil {
		return err
	}
	v.Date = date
	return nil
}

func (v *Visit) Cancel(now time.Time) error {
	return v.transition(VisitCancelled, now)
}

// Close completes the visit. A visit that was never started is started first.
// At least one task must be done.
func (v *Visit) Close(doneTasks int, observation, closedBy string, now time.Time) error {
	if doneTasks < 1 {
		return ErrNoTasksDone
	}
	if v.Status == VisitScheduled || v.Status == VisitRescheduled {
		if err := v.Start(now); err != nil {
			return err
		}
	}
	if err := v.transition(VisitCompleted, now); err != nil {
		return err
	}
	v.CrewObservation = observation
	v.ClosedBy = closedBy
	return nil
}
