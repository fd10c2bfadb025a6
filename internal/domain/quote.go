package domain

import (
	"fmt"
	"time"
)

// Quote is a proposal combining a client, selected plans and commercial terms.
type Quote struct {
	ID               string
	ClientID         string
	CreationDate     time.Time
	Status           QuoteStatus
	SendDate         *time.Time
	AcceptanceDate   *time.Time
	Considerations   string
	EconomicProposal string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuotePending:   {QuoteSent, QuoteAccepted, QuoteDiscarded},
	QuoteSent:      {QuotePending, QuoteAccepted, QuoteDiscarded},
	QuoteDiscarded: {QuotePending},
	QuoteAccepted:  {},
}

func (q *Quote) CanTransitionTo(next QuoteStatus) bool {
	for _, s := range quoteTransitions[q.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the quote to next, stamping the send or acceptance date
// when the transition introduces it.
func (q *Quote) TransitionTo(next QuoteStatus, now time.Time) error {
	if !next.Valid() {
		return fmt.Errorf("%w: quote status %q", ErrValidation, next)
	}
	if q.Status == next {
		return nil
	}
	if !q.CanTransitionTo(next) {
		return fmt.Errorf("%w: quote %s -> %s", ErrInvalidTransition, q.Status, next)
	}
	q.Status = next
	d := now
	switch next {
	case QuoteSent:
		q.SendDate = &d
	case QuoteAccepted:
		if q.AcceptanceDate == nil {
			q.AcceptanceDate = &d
		}
	}
	q.UpdatedAt = now
	return nil
}

func (q *Quote) Validate() error {
	if q.ClientID == "" {
		return fmt.Errorf("%w: quote client is required", ErrValidation)
	}
	if q.Status != "" && !q.Status.Valid() {
		return fmt.Errorf("%w: quote status %q", ErrValidation, q.Status)
	}
	return nil
}

// QuotePatch carries the scalar fields editable on an existing quote.
// Nil fields are left untouched.
type QuotePatch struct {
	ClientID         *string
	Considerations   *string
	EconomicProposal *string
}

// Apply copies the non-nil patch fields onto q.
func (p QuotePatch) Apply(q *Quote) {
	if p.ClientID != nil {
		q.ClientID = *p.ClientID
	}
	if p.Considerations != nil {
		q.Considerations = *p.Considerations
	}
	if p.EconomicProposal != nil {
		q.EconomicProposal = *p.EconomicProposal
	}
}
