package testutil

import (
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client options
type ClientOption func(*domain.Client)

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithCity(cityID string) ClientOption {
	return func(c *domain.Client) {
		c.CityID = cityID
	}
}

func WithContact(name, phone, email string) ClientOption {
	return func(c *domain.Client) {
		c.ContactName = name
		c.ContactPhone = phone
		c.ContactEmail = email
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:             uuid.New().String(),
		Name:           name,
		Address:        "1 Garden Way",
		Status:         domain.ClientProspect,
		OnboardingDate: now.Truncate(24 * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestCity(name string) *domain.City {
	return &domain.City{ID: uuid.New().String(), Name: name, Region: "Metropolitana"}
}

func NewTestTeam(name string) *domain.Team {
	return &domain.Team{ID: uuid.New().String(), Name: name, Leader: "Leader of " + name}
}

func NewTestPlan(name string) *domain.Plan {
	now := time.Now().UTC()
	return &domain.Plan{
		ID:          uuid.New().String(),
		Name:        name,
		Description: name + " service tier",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewTestTask(planID, name string) *domain.Task {
	now := time.Now().UTC()
	return &domain.Task{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Name:      name,
		Kind:      domain.TaskPredefined,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Quote options
type QuoteOption func(*domain.Quote)

func WithQuoteStatus(s domain.QuoteStatus) QuoteOption {
	return func(q *domain.Quote) {
		q.Status = s
	}
}

func WithTerms(considerations, proposal string) QuoteOption {
	return func(q *domain.Quote) {
		q.Considerations = considerations
		q.EconomicProposal = proposal
	}
}

func NewTestQuote(clientID string, opts ...QuoteOption) *domain.Quote {
	now := time.Now().UTC()
	q := &domain.Quote{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		CreationDate: now.Truncate(24 * time.Hour),
		Status:       domain.QuotePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Contract options
type ContractOption func(*domain.Contract)

func WithFrequency(f domain.Frequency) ContractOption {
	return func(c *domain.Contract) {
		c.Frequency = f
	}
}

func WithVisitDay(d time.Weekday) ContractOption {
	return func(c *domain.Contract) {
		c.VisitDay = d
	}
}

func WithPeriod(start, end time.Time) ContractOption {
	return func(c *domain.Contract) {
		c.StartDate = start
		c.EndDate = end
	}
}

func WithQuote(quoteID string) ContractOption {
	return func(c *domain.Contract) {
		c.QuoteID = &quoteID
	}
}

func NewTestContract(clientID, teamID string, opts ...ContractOption) *domain.Contract {
	now := time.Now().UTC()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &domain.Contract{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		TeamID:    teamID,
		StartDate: start,
		EndDate:   start.AddDate(0, 3, -1),
		Status:    domain.ContractActive,
		Frequency: domain.FrequencyWeekly,
		VisitDay:  time.Tuesday,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestVisit(contract *domain.Contract, date time.Time) *domain.Visit {
	now := time.Now().UTC()
	return &domain.Visit{
		ID:         uuid.New().String(),
		ClientID:   contract.ClientID,
		ContractID: contract.ID,
		TeamID:     contract.TeamID,
		Date:       date,
		Type:       domain.VisitRegular,
		Status:     domain.VisitScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddedPlanFrom stages every task of plan with default flags, the way the
// plan builder does.
func AddedPlanFrom(plan *domain.Plan, tasks ...*domain.Task) domain.AddedPlan {
	ap := domain.AddedPlan{PlanID: plan.ID, Name: plan.Name, ReferencePrice: decimal.Zero}
	for _, t := range tasks {
		ap.Tasks = append(ap.Tasks, domain.StagedTask{
			TaskID:        t.ID,
			Name:          t.Name,
			Included:      true,
			VisibleToCrew: true,
		})
	}
	return ap
}
