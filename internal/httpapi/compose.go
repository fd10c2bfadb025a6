package httpapi

import (
	"context"
	"fmt"

	"github.com/alexanderramin/jardin/internal/composer"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanRequest selects one catalog plan for a quote or contract. With no
// tasks listed every catalog task of the plan is included and visible.
// Listing tasks keeps only those tasks.
type PlanRequest struct {
	PlanID         string           `json:"plan_id"`
	CustomName     string           `json:"custom_name,omitempty"`
	ReferencePrice *decimal.Decimal `json:"reference_price,omitempty"`
	Tasks          []TaskRequest    `json:"tasks,omitempty"`
}

// TaskRequest adjusts one task of a selected plan. Nil flags default to true.
type TaskRequest struct {
	TaskID        string `json:"task_id"`
	Included      *bool  `json:"included,omitempty"`
	VisibleToCrew *bool  `json:"visible_to_crew,omitempty"`
	Observation   string `json:"observation,omitempty"`
}

// buildPlans stages each requested plan through a composer.Builder so the
// result carries catalog names and the builder's defaults.
func (s *Server) buildPlans(ctx context.Context, reqs []PlanRequest) ([]domain.AddedPlan, error) {
	catalog, err := s.svc.Catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	b := composer.NewBuilder(catalog)
	seen := make(map[string]bool, len(reqs))

	for _, pr := range reqs {
		if seen[pr.PlanID] {
			return nil, fmt.Errorf("%w: plan %s", domain.ErrDuplicatePlan, pr.PlanID)
		}
		seen[pr.PlanID] = true
		if !b.SelectPlan(pr.PlanID) {
			return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, pr.PlanID)
		}
		if len(pr.Tasks) > 0 {
			if err := stageTasks(b, pr); err != nil {
				return nil, err
			}
		}
		if !b.CommitPlan() {
			return nil, fmt.Errorf("%w: plan %s has no tasks", domain.ErrValidation, pr.PlanID)
		}
		if pr.CustomName != "" {
			if err := b.SetCustomName(pr.PlanID, pr.CustomName); err != nil {
				return nil, err
			}
		}
		if pr.ReferencePrice != nil {
			if err := b.SetReferencePrice(pr.PlanID, *pr.ReferencePrice); err != nil {
				return nil, err
			}
		}
	}
	return b.AddedPlans(), nil
}

func stageTasks(b *composer.Builder, pr PlanRequest) error {
	staged, _ := b.Staged()
	wanted := make(map[string]TaskRequest, len(pr.Tasks))
	for _, tr := range pr.Tasks {
		wanted[tr.TaskID] = tr
	}
	for _, t := range staged.Tasks {
		if _, ok := wanted[t.TaskID]; !ok {
			b.RemoveTask(t.TaskID)
		}
	}
	for _, tr := range pr.Tasks {
		included := domain.BoolFromPtrWithDefault(true, tr.Included)
		if err := b.ToggleTaskFlag(tr.TaskID, domain.FlagIncluded, included); err != nil {
			return fmt.Errorf("%w: plan %s has no task %q", domain.ErrValidation, pr.PlanID, tr.TaskID)
		}
		visible := domain.BoolFromPtrWithDefault(true, tr.VisibleToCrew)
		if err := b.ToggleTaskFlag(tr.TaskID, domain.FlagVisibleToCrew, visible); err != nil {
			return err
		}
		if err := b.SetObservation(tr.TaskID, tr.Observation); err != nil {
			return err
		}
	}
	return nil
}
