package domain

import (
	"fmt"
	"time"
)

type Client struct {
	ID             string
	Name           string
	Address        string
	CityID         string
	Status         ClientStatus
	ContactName    string
	ContactPhone   string
	ContactEmail   string
	LocationLink   string
	Notes          string
	OnboardingDate time.Time
	AcceptanceDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var clientTransitions = map[ClientStatus][]ClientStatus{
	ClientProspect: {ClientActive, ClientInactive},
	ClientActive:   {ClientInactive},
	ClientInactive: {ClientActive},
}

// CanTransitionTo reports whether the client may move to next.
func (c *Client) CanTransitionTo(next ClientStatus) bool {
	for _, s := range clientTransitions[c.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Activate marks the client active and stamps the acceptance date when it is
// still unset. Activating an already active client only fills the date.
func (c *Client) Activate(now time.Time) error {
	if c.Status != ClientActive {
		if !c.CanTransitionTo(ClientActive) {
			return fmt.Errorf("%w: client %s -> %s", ErrInvalidTransition, c.Status, ClientActive)
		}
		c.Status = ClientActive
	}
	if c.AcceptanceDate == nil {
		d := now
		c.AcceptanceDate = &d
	}
	c.UpdatedAt = now
	return nil
}

// Validate checks the fields required to persist a client.
func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("%w: client status %q", ErrValidation, c.Status)
	}
	return nil
}
