package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/importer"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type catalogService struct {
	plans    repository.PlanRepo
	tasks    repository.TaskRepo
	cities   repository.CityRepo
	teams    repository.TeamRepo
	clients  repository.ClientRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(
	plans repository.PlanRepo,
	tasks repository.TaskRepo,
	cities repository.CityRepo,
	teams repository.TeamRepo,
	clients repository.ClientRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		plans:    plans,
		tasks:    tasks,
		cities:   cities,
		teams:    teams,
		clients:  clients,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Load(ctx context.Context) ([]domain.PlanWithTasks, error) {
	var (
		plans []*domain.Plan
		tasks []*domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = s.plans.List(gctx)
		if err != nil {
			return fmt.Errorf("listing plans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return joinCatalog(plans, tasks), nil
}

func (s *catalogService) LoadReferenceData(ctx context.Context) (*ReferenceData, error) {
	var ref ReferenceData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ref.Catalog, err = s.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ref.Clients, err = s.clients.List(gctx, "")
		if err != nil {
			return fmt.Errorf("listing clients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.Teams, err = s.teams.List(gctx)
		if err != nil {
			return fmt.Errorf("listing teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.Cities, err = s.cities.List(gctx)
		if err != nil {
			return fmt.Errorf("listing cities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *catalogService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadCatalogSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *catalogService) ImportSchema(ctx context.Context, schema *importer.CatalogSchema) (result *ImportResult, err error) {
	fields := map[string]any{"plans": len(schema.Plans)}
	defer observe(ctx, s.observer, "import-catalog", fields)(&err)

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	catalog := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for _, p := range catalog.Plans {
			plan := p.Plan
			if err := txPlans.Create(ctx, &plan); err != nil {
				return fmt.Errorf("creating plan %q: %w", plan.Name, err)
			}
			for _, t := range p.Tasks {
				task := t
				if err := txTasks.Create(ctx, &task); err != nil {
					return fmt.Errorf("creating task %q in plan %q: %w", task.Name, plan.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["tasks"] = catalog.TaskCount()
	return &ImportResult{
		PlanCount: len(catalog.Plans),
		TaskCount: catalog.TaskCount(),
		RefMap:    catalog.RefMap,
	}, nil
}

func (s *catalogService) CreatePlan(ctx context.Context, p *domain.Plan) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: plan name is required", domain.ErrValidation)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return s.plans.Create(ctx, p)
}

func (s *catalogService) GetPlan(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *catalogService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *catalogService) UpdatePlan(ctx context.Context, p *domain.Plan) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: plan name is required", domain.ErrValidation)
	}
	return s.plans.Update(ctx, p)
}

func (s *catalogService) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

func (s *catalogService) CreateTask(ctx context.Context, t *domain.Task) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: task name is required", domain.ErrValidation)
	}
	if t.Kind == "" {
		t.Kind = domain.TaskCustom
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: task kind %q", domain.ErrValidation, t.Kind)
	}
	if _, err := s.plans.GetByID(ctx, t.PlanID); err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return s.tasks.Create(ctx, t)
}

func (s *catalogService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// ListTasks lists the tasks of one plan, or every task when planID is empty.
func (s *catalogService) ListTasks(ctx context.Context, planID string) ([]*domain.Task, error) {
	if planID == "" {
		return s.tasks.List(ctx)
	}
	return s.tasks.ListByPlan(ctx, planID)
}

func (s *catalogService) UpdateTask(ctx context.Context, t *domain.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name is required", domain.ErrValidation)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: task kind %q", domain.ErrValidation, t.Kind)
	}
	return s.tasks.Update(ctx, t)
}

func (s *catalogService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *catalogService) CreateCity(ctx context.Context, c *domain.City) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: city name is required", domain.ErrValidation)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return s.cities.Create(ctx, c)
}

func (s *catalogService) GetCity(ctx context.Context, id string) (*domain.City, error) {
	return s.cities.GetByID(ctx, id)
}

func (s *catalogService) ListCities(ctx context.Context) ([]*domain.City, error) {
	return s.cities.List(ctx)
}

func (s *catalogService) UpdateCity(ctx context.Context, c *domain.City) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: city name is required", domain.ErrValidation)
	}
	return s.cities.Update(ctx, c)
}

func (s *catalogService) DeleteCity(ctx context.Context, id string) error {
	return s.cities.Delete(ctx, id)
}

func (s *catalogService) CreateTeam(ctx context.Context, t *domain.Team) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: team name is required", domain.ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return s.teams.Create(ctx, t)
}

func (s *catalogService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *catalogService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teams.List(ctx)
}

func (s *catalogService) UpdateTeam(ctx context.Context, t *domain.Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team name is required", domain.ErrValidation)
	}
	return s.teams.Update(ctx, t)
}

func (s *catalogService) DeleteTeam(ctx context.Context, id string) error {
	return s.teams.Delete(ctx, id)
}
