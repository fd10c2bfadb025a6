package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/scheduler"
	"github.com/google/uuid"
)

type visitService struct {
	visits   repository.VisitRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewVisitService(visits repository.VisitRepo, uow db.UnitOfWork, observers ...UseCaseObserver) VisitService {
	return &visitService{visits: visits, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create adds a visit outside the generated agenda, typically an extra one.
// Client and team default to the contract's.
func (s *visitService) Create(ctx context.Context, v *domain.Visit) error {
	if v.Date.IsZero() {
		return fmt.Errorf("%w: visit date is required", domain.ErrValidation)
	}
	if v.Type == "" {
		v.Type = domain.VisitExtra
	}
	if v.Status == "" {
		v.Status = domain.VisitScheduled
	}
	if !v.Type.Valid() || !v.Status.Valid() {
		return fmt.Errorf("%w: visit type %q status %q", domain.ErrValidation, v.Type, v.Status)
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		c, err := repository.NewSQLiteContractRepo(tx).GetByID(ctx, v.ContractID)
		if err != nil {
			return fmt.Errorf("loading contract: %w", err)
		}
		v.ClientID = c.ClientID
		v.TeamID = domain.CoalesceStr(v.TeamID, c.TeamID)
		return repository.NewSQLiteVisitRepo(tx).Create(ctx, v)
	})
}

func (s *visitService) GetByID(ctx context.Context, id string) (*domain.Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *visitService) List(ctx context.Context, f repository.VisitFilter) ([]*domain.Visit, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: visit status %q", domain.ErrValidation, f.Status)
	}
	return s.visits.List(ctx, f)
}

func (s *visitService) Delete(ctx context.Context, id string) error {
	return s.visits.Delete(ctx, id)
}

func (s *visitService) GenerateAgenda(ctx context.Context, contractID string) (result *ScheduleResult, err error) {
	fields := map[string]any{"contract_id": contractID}
	defer observe(ctx, s.observer, "generate-agenda", fields)(&err)

	result = &ScheduleResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVisits := repository.NewSQLiteVisitRepo(tx)

		c, err := repository.NewSQLiteContractRepo(tx).GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if c.Status != domain.ContractActive {
			return fmt.Errorf("%w: contract is %s, only active contracts are scheduled", domain.ErrValidation, c.Status)
		}

		want, err := scheduler.AgendaDates(scheduler.AgendaInput{
			Start:     c.StartDate,
			End:       c.EndDate,
			Day:       c.VisitDay,
			Frequency: c.Frequency,
		})
		if err != nil {
			return err
		}

		existing, err := txVisits.List(ctx, repository.VisitFilter{ContractID: c.ID})
		if err != nil {
			return err
		}
		// Every regular visit holds its original slot, whether it was
		// rescheduled or cancelled since.
		var have []time.Time
		for _, v := range existing {
			if v.Type == domain.VisitRegular {
				have = append(have, v.OriginalDate)
			}
		}

		now := time.Now().UTC()
		for _, d := range scheduler.MissingDates(want, have) {
			v := &domain.Visit{
				ID:           uuid.New().String(),
				ClientID:     c.ClientID,
				ContractID:   c.ID,
				TeamID:       c.TeamID,
				Date:         d,
				OriginalDate: d,
				Type:         domain.VisitRegular,
				Status:       domain.VisitScheduled,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := txVisits.Create(ctx, v); err != nil {
				return fmt.Errorf("creating visit on %s: %w", d.Format("2006-01-02"), err)
			}
			result.Created = append(result.Created, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["created"] = len(result.Created)
	if len(result.Created) == 0 {
		result.Message = "agenda already up to date"
	} else {
		result.Message = fmt.Sprintf("%d visits scheduled", len(result.Created))
	}
	return result, nil
}

// Route lists the visits between from and to, both inclusive, as route
// stops. An empty teamID includes every team.
func (s *visitService) Route(ctx context.Context, from, to time.Time, teamID string) ([]scheduler.RouteStop, error) {
	var stops []scheduler.RouteStop
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		visits, err := repository.NewSQLiteVisitRepo(tx).List(ctx, repository.VisitFilter{
			TeamID: teamID,
			From:   &from,
			To:     &to,
		})
		if err != nil {
			return err
		}

		lk := newVisitLookup(tx)
		for _, v := range visits {
			client, err := lk.client(ctx, v.ClientID)
			if err != nil {
				return err
			}
			team, err := lk.team(ctx, v.TeamID)
			if err != nil {
				return err
			}
			tasks, err := lk.tasks(ctx, v.ContractID)
			if err != nil {
				return err
			}
			stop := scheduler.RouteStop{
				Visit:      *v,
				ClientName: client.Name,
				Address:    client.Address,
				TeamName:   team.Name,
			}
			for _, t := range tasks {
				stop.Tasks = append(stop.Tasks, t.TaskName)
			}
			stops = append(stops, stop)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	scheduler.SortRoute(stops)
	return stops, nil
}

// Sheet builds the crew's view of a visit. A completed visit comes back with
// its recorded marks and observation.
func (s *visitService) Sheet(ctx context.Context, visitID string) (*dispatch.Sheet, error) {
	var sheet *dispatch.Sheet
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVisits := repository.NewSQLiteVisitRepo(tx)
		v, err := txVisits.GetByID(ctx, visitID)
		if err != nil {
			return err
		}

		lk := newVisitLookup(tx)
		client, err := lk.client(ctx, v.ClientID)
		if err != nil {
			return err
		}
		team, err := lk.team(ctx, v.TeamID)
		if err != nil {
			return err
		}
		tasks, err := lk.tasks(ctx, v.ContractID)
		if err != nil {
			return err
		}

		sheet = &dispatch.Sheet{
			Visit:       *v,
			ClientName:  client.Name,
			Address:     client.Address,
			TeamName:    team.Name,
			Observation: v.CrewObservation,
		}
		for _, t := range tasks {
			sheet.Tasks = append(sheet.Tasks, dispatch.SheetTask{
				TaskSelectionID: t.TaskSelectionID,
				TaskID:          t.TaskID,
				Name:            t.TaskName,
				PlanName:        t.PlanName,
				Note:            t.Observation,
			})
		}

		if v.Status != domain.VisitCompleted {
			return nil
		}
		done, err := txVisits.ListCompletions(ctx, v.ID)
		if err != nil {
			return err
		}
		markCompleted(sheet, done)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *visitService) Start(ctx context.Context, visitID string) (*domain.Visit, error) {
	return s.mutate(ctx, visitID, func(v *domain.Visit, now time.Time) error {
		return v.Start(now)
	})
}

func (s *visitService) Reschedule(ctx context.Context, visitID string, date time.Time) (*domain.Visit, error) {
	return s.mutate(ctx, visitID, func(v *domain.Visit, now time.Time) error {
		return v.Reschedule(date, now)
	})
}

func (s *visitService) Cancel(ctx context.Context, visitID string) (*domain.Visit, error) {
	return s.mutate(ctx, visitID, func(v *domain.Visit, now time.Time) error {
		return v.Cancel(now)
	})
}

func (s *visitService) mutate(ctx context.Context, visitID string, fn func(*domain.Visit, time.Time) error) (*domain.Visit, error) {
	var out *domain.Visit
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVisits := repository.NewSQLiteVisitRepo(tx)
		v, err := txVisits.GetByID(ctx, visitID)
		if err != nil {
			return err
		}
		if err := fn(v, time.Now().UTC()); err != nil {
			return err
		}
		out = v
		return txVisits.Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close completes a visit with the tasks the crew marked done. Every id must
// be a crew-visible task of the visit's contract.
func (s *visitService) Close(ctx context.Context, req dispatch.CloseRequest) (visit *domain.Visit, err error) {
	fields := map[string]any{"visit_id": req.VisitID, "done": len(req.DoneTaskIDs)}
	defer observe(ctx, s.observer, "close-visit", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVisits := repository.NewSQLiteVisitRepo(tx)
		v, err := txVisits.GetByID(ctx, req.VisitID)
		if err != nil {
			return err
		}

		visible, err := repository.NewSQLiteSelectionRepo(tx).ListVisibleTasks(ctx, domain.OriginContract, v.ContractID)
		if err != nil {
			return fmt.Errorf("listing visible tasks: %w", err)
		}
		known := make(map[string]repository.VisibleTask, len(visible))
		for _, t := range visible {
			known[t.TaskSelectionID] = t
		}
		seen := make(map[string]bool, len(req.DoneTaskIDs))
		var done []domain.VisitTaskCompletion
		for _, id := range req.DoneTaskIDs {
			t, ok := known[id]
			if !ok {
				return fmt.Errorf("%w: task %s is not on this visit", domain.ErrValidation, id)
			}
			if !seen[t.TaskID] {
				seen[t.TaskID] = true
				done = append(done, domain.VisitTaskCompletion{
					VisitID:  req.VisitID,
					TaskID:   t.TaskID,
					TaskName: t.TaskName,
					PlanName: t.PlanName,
				})
			}
		}

		if err := v.Close(len(done), strings.TrimSpace(req.Observation), req.ClosedBy, time.Now().UTC()); err != nil {
			return err
		}
		if err := txVisits.Update(ctx, v); err != nil {
			return fmt.Errorf("closing visit: %w", err)
		}
		if err := txVisits.AddCompletions(ctx, v.ID, done); err != nil {
			return fmt.Errorf("recording done tasks: %w", err)
		}
		visit = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// markCompleted marks the recorded tasks done on a completed visit's sheet.
// Tasks no longer on the contract are appended from the record.
func markCompleted(sheet *dispatch.Sheet, done []domain.VisitTaskCompletion) {
	byTask := make(map[string]int, len(sheet.Tasks))
	for i, t := range sheet.Tasks {
		byTask[t.TaskID] = i
	}
	for _, c := range done {
		if i, ok := byTask[c.TaskID]; ok {
			sheet.Tasks[i].Done = true
			continue
		}
		sheet.Tasks = append(sheet.Tasks, dispatch.SheetTask{
			TaskID:   c.TaskID,
			Name:     c.TaskName,
			PlanName: c.PlanName,
			Done:     true,
		})
	}
}

func (s *visitService) ListCompletions(ctx context.Context, visitID string) ([]domain.VisitTaskCompletion, error) {
	return s.visits.ListCompletions(ctx, visitID)
}

// visitLookup caches the rows shared by many visits of one listing.
type visitLookup struct {
	clients repository.ClientRepo
	teams   repository.TeamRepo
	sels    repository.SelectionRepo

	clientByID map[string]*domain.Client
	teamByID   map[string]*domain.Team
	tasksByID  map[string][]repository.VisibleTask
}

func newVisitLookup(tx db.DBTX) *visitLookup {
	return &visitLookup{
		clients:    repository.NewSQLiteClientRepo(tx),
		teams:      repository.NewSQLiteTeamRepo(tx),
		sels:       repository.NewSQLiteSelectionRepo(tx),
		clientByID: make(map[string]*domain.Client),
		teamByID:   make(map[string]*domain.Team),
		tasksByID:  make(map[string][]repository.VisibleTask),
	}
}

func (l *visitLookup) client(ctx context.Context, id string) (*domain.Client, error) {
	if c, ok := l.clientByID[id]; ok {
		return c, nil
	}
	c, err := l.clients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading client: %w", err)
	}
	l.clientByID[id] = c
	return c, nil
}

func (l *visitLookup) team(ctx context.Context, id string) (*domain.Team, error) {
	if t, ok := l.teamByID[id]; ok {
		return t, nil
	}
	t, err := l.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	l.teamByID[id] = t
	return t, nil
}

func (l *visitLookup) tasks(ctx context.Context, contractID string) ([]repository.VisibleTask, error) {
	if ts, ok := l.tasksByID[contractID]; ok {
		return ts, nil
	}
	ts, err := l.sels.ListVisibleTasks(ctx, domain.OriginContract, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing visible tasks: %w", err)
	}
	l.tasksByID[contractID] = ts
	return ts, nil
}
