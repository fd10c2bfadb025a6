package domain

import (
	"fmt"
	"time"
)

// Contract is a committed service agreement that drives visit scheduling.
type Contract struct {
	ID        string
	ClientID  string
	TeamID    string
	QuoteID   *string
	StartDate time.Time
	EndDate   time.Time
	Status    ContractStatus
	Frequency Frequency
	VisitDay  time.Weekday
	CreatedAt time.Time
	UpdatedAt time.Time
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractActive:    {ContractSuspended, ContractFinished, ContractCancelled},
	ContractSuspended: {ContractActive, ContractFinished, ContractCancelled},
	ContractFinished:  {},
	ContractCancelled: {},
}

func (c *Contract) CanTransitionTo(next ContractStatus) bool {
	for _, s := range contractTransitions[c.Status] {
		if s == next {
			return true
		}
	}
	return false
}

func (c *Contract) TransitionTo(next ContractStatus, now time.Time) error {
	if c.Status == next {
		return nil
	}
	if !c.CanTransitionTo(next) {
		return fmt.Errorf("%w: contract %s -> %s", ErrInvalidTransition, c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = now
	return nil
}

// Validate checks the fields required to persist a contract.
func (c *Contract) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: contract client is required", ErrValidation)
	case c.TeamID == "":
		return fmt.Errorf("%w: contract team is required", ErrValidation)
	case c.StartDate.IsZero():
		return fmt.Errorf("%w: contract start date is required", ErrValidation)
	case c.EndDate.IsZero():
		return fmt.Errorf("%w: contract end date is required", ErrValidation)
	case c.EndDate.Before(c.StartDate):
		return fmt.Errorf("%w: contract end date %s is before start date %s",
			ErrValidation, c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	case !c.Frequency.Valid():
		return fmt.Errorf("%w: contract frequency %q", ErrValidation, c.Frequency)
	case c.Status != "" && !c.Status.Valid():
		return fmt.Errorf("%w: contract status %q", ErrValidation, c.Status)
	}
	return nil
}

// ContractPatch carries the scalar fields editable on an existing contract.
type ContractPatch struct {
	TeamID    *string
	StartDate *time.Time
	EndDate   *time.Time
	Frequency *Frequency
	VisitDay  *time.Weekday
	Status    *ContractStatus
}

// Apply copies the non-nil patch fields onto c. A status change goes through
// the transition table.
func (p ContractPatch) Apply(c *Contract, now time.Time) error {
	if p.TeamID != nil {
		c.TeamID = *p.TeamID
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.Frequency != nil {
		c.Frequency = *p.Frequency
	}
	if p.VisitDay != nil {
		c.VisitDay = *p.VisitDay
	}
	if p.Status != nil {
		if err := c.TransitionTo(*p.Status, now); err != nil {
			return err
		}
	}
	return c.Validate()
}
