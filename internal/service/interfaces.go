package service

import (
	"context"
	"time"

	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/importer"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/scheduler"
)

type CatalogService interface {
	// Load returns every plan with its tasks, plans and tasks sorted by name.
	Load(ctx context.Context) ([]domain.PlanWithTasks, error)
	LoadReferenceData(ctx context.Context) (*ReferenceData, error)
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.CatalogSchema) (*ImportResult, error)

	CreatePlan(ctx context.Context, p *domain.Plan) error
	GetPlan(ctx context.Context, id string) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	UpdatePlan(ctx context.Context, p *domain.Plan) error
	DeletePlan(ctx context.Context, id string) error

	CreateTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, planID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, id string) error

	CreateCity(ctx context.Context, c *domain.City) error
	GetCity(ctx context.Context, id string) (*domain.City, error)
	ListCities(ctx context.Context) ([]*domain.City, error)
	UpdateCity(ctx context.Context, c *domain.City) error
	DeleteCity(ctx context.Context, id string) error

	CreateTeam(ctx context.Context, t *domain.Team) error
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
	UpdateTeam(ctx context.Context, t *domain.Team) error
	DeleteTeam(ctx context.Context, id string) error
}

// ReferenceData is everything a composition screen needs up front.
type ReferenceData struct {
	Catalog []domain.PlanWithTasks
	Clients []*domain.Client
	Teams   []*domain.Team
	Cities  []*domain.City
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	PlanCount int
	TaskCount int
	RefMap    map[string]string
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Activate(ctx context.Context, id string) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

// DocumentDetail is a persisted quote or contract rebuilt for display or
// editing, with its selections in composition order.
type DocumentDetail struct {
	Client   *domain.Client
	CityName string
	Plans    []domain.AddedPlan
}

type QuoteDetail struct {
	Quote *domain.Quote
	DocumentDetail
}

type QuoteService interface {
	// SaveQuoteWithPlansAndTasks creates the quote and every selection in one
	// transaction and returns the new quote id.
	SaveQuoteWithPlansAndTasks(ctx context.Context, draft *domain.Quote, plans []domain.AddedPlan) (string, error)
	// UpdateQuoteWithPlansAndTasks applies patch and replaces every selection
	// of the quote with plans.
	UpdateQuoteWithPlansAndTasks(ctx context.Context, quoteID string, patch domain.QuotePatch, plans []domain.AddedPlan) error
	TransitionStatus(ctx context.Context, quoteID string, next domain.QuoteStatus) (*domain.Quote, error)
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	GetDetail(ctx context.Context, id string) (*QuoteDetail, error)
	List(ctx context.Context, status domain.QuoteStatus) ([]*domain.Quote, error)
	Delete(ctx context.Context, id string) error
	Document(ctx context.Context, id string) (*document.Document, error)
	PDF(ctx context.Context, id string) ([]byte, error)
}

type ContractDetail struct {
	Contract *domain.Contract
	TeamName string
	DocumentDetail
}

// ContractTerms are the scalar fields of a contract created from a quote.
type ContractTerms struct {
	TeamID    string
	StartDate time.Time
	EndDate   time.Time
	Frequency domain.Frequency
	VisitDay  time.Weekday
}

// TaskOverride adjusts one task while a quote is turned into a contract.
// Nil fields keep the quote's value.
type TaskOverride struct {
	VisibleToCrew *bool
	Observation   *string
}

type ContractService interface {
	// SaveContractWithPlansAndTasks creates the contract and its selections,
	// activates the client and accepts the originating quote, all in one
	// transaction.
	SaveContractWithPlansAndTasks(ctx context.Context, draft *domain.Contract, plans []domain.AddedPlan) (string, error)
	UpdateContractWithPlansAndTasks(ctx context.Context, contractID string, patch domain.ContractPatch, plans []domain.AddedPlan) error
	// CreateContractFromQuote copies the quote's selections into a new
	// contract. overrides is keyed by task id.
	CreateContractFromQuote(ctx context.Context, quoteID string, terms ContractTerms, overrides map[string]TaskOverride) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	GetDetail(ctx context.Context, id string) (*ContractDetail, error)
	List(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error)
	Delete(ctx context.Context, id string) error
	Document(ctx context.Context, id string) (*document.Document, error)
}

// ScheduleResult reports the outcome of agenda generation.
type ScheduleResult struct {
	Message string          `json:"message"`
	Created []*domain.Visit `json:"created"`
}

type VisitService interface {
	Create(ctx context.Context, v *domain.Visit) error
	GetByID(ctx context.Context, id string) (*domain.Visit, error)
	List(ctx context.Context, f repository.VisitFilter) ([]*domain.Visit, error)
	Delete(ctx context.Context, id string) error
	// GenerateAgenda creates the visits of a contract that do not exist yet.
	GenerateAgenda(ctx context.Context, contractID string) (*ScheduleResult, error)
	Route(ctx context.Context, from, to time.Time, teamID string) ([]scheduler.RouteStop, error)
	Sheet(ctx context.Context, visitID string) (*dispatch.Sheet, error)
	Start(ctx context.Context, visitID string) (*domain.Visit, error)
	Reschedule(ctx context.Context, visitID string, date time.Time) (*domain.Visit, error)
	Cancel(ctx context.Context, visitID string) (*domain.Visit, error)
	Close(ctx context.Context, req dispatch.CloseRequest) (*domain.Visit, error)
	ListCompletions(ctx context.Context, visitID string) ([]domain.VisitTaskCompletion, error)
}
