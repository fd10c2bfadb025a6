package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
)

type CityRepo interface {
	Create(ctx context.Context, c *domain.City) error
	GetByID(ctx context.Context, id string) (*domain.City, error)
	List(ctx context.Context) ([]*domain.City, error)
	Update(ctx context.Context, c *domain.City) error
	Delete(ctx context.Context, id string) error
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type QuoteRepo interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, status domain.QuoteStatus) ([]*domain.Quote, error)
	Update(ctx context.Context, q *domain.Quote) error
	Delete(ctx context.Context, id string) error
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

// SelectionRepo stores plan and task selections. Lookups and deletes are
// always filtered by origin document.
type SelectionRepo interface {
	CreatePlanSelection(ctx context.Context, ps *domain.PlanSelection) error
	CreateTaskSelection(ctx context.Context, ts *domain.TaskSelection) error
	ListPlanSelections(ctx context.Context) ([]*domain.PlanSelection, error)
	ListByOrigin(ctx context.Context, origin domain.OriginType, originID string) ([]domain.SelectionWithTasks, error)
	ListVisibleTasks(ctx context.Context, origin domain.OriginType, originID string) ([]VisibleTask, error)
	DeleteByOrigin(ctx context.Context, origin domain.OriginType, originID string) (int, error)
}

// VisibleTask is a task selection joined with its catalog names, as shown
// to a field crew.
type VisibleTask struct {
	TaskSelectionID string
	TaskID          string
	TaskName        string
	PlanName        string
	Observation     string
}

// VisitFilter narrows visit listings. Zero fields are ignored.
type VisitFilter struct {
	ContractID string
	TeamID     string
	Status     domain.VisitStatus
	From       *time.Time
	To         *time.Time
}

type VisitRepo interface {
	Create(ctx context.Context, v *domain.Visit) error
	GetByID(ctx context.Context, id string) (*domain.Visit, error)
	List(ctx context.Context, f VisitFilter) ([]*domain.Visit, error)
	Update(ctx context.Context, v *domain.Visit) error
	Delete(ctx context.Context, id string) error
	AddCompletions(ctx context.Context, visitID string, done []domain.VisitTaskCompletion) error
	ListCompletions(ctx context.Context, visitID string) ([]domain.VisitTaskCompletion, error)
}
