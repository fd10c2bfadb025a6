package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/jardin/internal/composer"
	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/google/uuid"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// joinCatalog groups tasks under their plans. Plans and tasks are sorted by
// name; tasks whose plan is missing are dropped.
func joinCatalog(plans []*domain.Plan, tasks []*domain.Task) []domain.PlanWithTasks {
	byPlan := make(map[string][]domain.Task, len(plans))
	for _, t := range tasks {
		byPlan[t.PlanID] = append(byPlan[t.PlanID], *t)
	}

	out := make([]domain.PlanWithTasks, 0, len(plans))
	for _, p := range plans {
		ts := byPlan[p.ID]
		sort.SliceStable(ts, func(i, j int) bool { return lessName(ts[i].Name, ts[j].Name, ts[i].ID, ts[j].ID) })
		out = append(out, domain.PlanWithTasks{Plan: *p, Tasks: ts})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessName(out[i].Plan.Name, out[j].Plan.Name, out[i].Plan.ID, out[j].Plan.ID)
	})
	return out
}

func lessName(a, b, idA, idB string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}

// loadCatalogTx reads the catalog through tx so it shares the caller's snapshot.
func loadCatalogTx(ctx context.Context, tx db.DBTX) ([]domain.PlanWithTasks, error) {
	plans, err := repository.NewSQLitePlanRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	tasks, err := repository.NewSQLiteTaskRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return joinCatalog(plans, tasks), nil
}

// persistSelections writes one plan selection per added plan and one task
// selection per staged task, copying the flags as they are.
func persistSelections(ctx context.Context, sels repository.SelectionRepo, origin domain.OriginType, originID string, plans []domain.AddedPlan) error {
	seen := make(map[string]bool, len(plans))
	for _, ap := range plans {
		if seen[ap.PlanID] {
			return fmt.Errorf("%w: %s", domain.ErrDuplicatePlan, ap.DisplayName())
		}
		seen[ap.PlanID] = true
		if ap.ReferencePrice.IsNegative() {
			return fmt.Errorf("%w: reference price of %q is negative", domain.ErrValidation, ap.DisplayName())
		}

		ps := &domain.PlanSelection{
			ID:             uuid.New().String(),
			OriginType:     origin,
			OriginID:       originID,
			PlanID:         ap.PlanID,
			CustomName:     ap.DisplayName(),
			ReferencePrice: ap.ReferencePrice,
		}
		if err := sels.CreatePlanSelection(ctx, ps); err != nil {
			return fmt.Errorf("creating plan selection %q: %w", ap.DisplayName(), err)
		}

		for _, t := range ap.Tasks {
			ts := &domain.TaskSelection{
				ID:              uuid.New().String(),
				PlanSelectionID: ps.ID,
				TaskID:          t.TaskID,
				Included:        t.Included,
				VisibleToCrew:   t.VisibleToCrew,
				Observation:     t.Observation,
			}
			if err := sels.CreateTaskSelection(ctx, ts); err != nil {
				return fmt.Errorf("creating task selection %q in plan %q: %w",
					domain.CoalesceStr(t.Name, t.TaskID), ap.DisplayName(), err)
			}
		}
	}
	return nil
}

// loadDocumentDetail rebuilds the client and added plans of one document.
func loadDocumentDetail(ctx context.Context, tx db.DBTX, origin domain.OriginType, originID, clientID string) (*DocumentDetail, error) {
	client, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("loading client: %w", err)
	}

	detail := &DocumentDetail{Client: client}
	if client.CityID != "" {
		city, err := repository.NewSQLiteCityRepo(tx).GetByID(ctx, client.CityID)
		if err != nil {
			return nil, fmt.Errorf("loading city: %w", err)
		}
		detail.CityName = city.Name
	}

	catalog, err := loadCatalogTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	sels, err := repository.NewSQLiteSelectionRepo(tx).ListByOrigin(ctx, origin, originID)
	if err != nil {
		return nil, fmt.Errorf("listing selections: %w", err)
	}
	detail.Plans = composer.FromSelections(catalog, sels).AddedPlans()
	return detail, nil
}

// DocumentNumber is the human-facing document number derived from an id.
func DocumentNumber(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
