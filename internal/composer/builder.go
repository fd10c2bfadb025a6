// Package composer stages catalog plans and tasks into the plan list of a
// quote or contract being composed. All state is local until the caller
// hands AddedPlans to the persistence services.
package composer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/shopspring/decimal"
)

// Builder holds one document's working selection and its committed plans.
// It is not safe for concurrent use.
type Builder struct {
	catalog map[string]domain.PlanWithTasks
	order   []string

	staged *domain.AddedPlan
	added  []domain.AddedPlan
}

// NewBuilder creates a builder over the given catalog.
func NewBuilder(catalog []domain.PlanWithTasks) *Builder {
	b := &Builder{catalog: make(map[string]domain.PlanWithTasks, len(catalog))}
	for _, p := range catalog {
		if _, dup := b.catalog[p.Plan.ID]; dup {
			continue
		}
		b.catalog[p.Plan.ID] = p
		b.order = append(b.order, p.Plan.ID)
	}
	return b
}

// FromSelections rebuilds a builder from persisted selections so an existing
// document can be edited. Task names come from the catalog when available.
func FromSelections(catalog []domain.PlanWithTasks, selections []domain.SelectionWithTasks) *Builder {
	b := NewBuilder(catalog)
	for _, sel := range selections {
		if b.isAdded(sel.Selection.PlanID) {
			continue
		}
		entry := b.catalog[sel.Selection.PlanID]
		ap := domain.AddedPlan{
			PlanID:         sel.Selection.PlanID,
			Name:           entry.Plan.Name,
			CustomName:     sel.Selection.CustomName,
			ReferencePrice: sel.Selection.ReferencePrice,
		}
		if ap.CustomName == ap.Name {
			ap.CustomName = ""
		}
		for _, ts := range sel.Tasks {
			task, _ := entry.TaskByID(ts.TaskID)
			ap.Tasks = append(ap.Tasks, domain.StagedTask{
				TaskID:        ts.TaskID,
				Name:          task.Name,
				Included:      ts.Included,
				VisibleToCrew: ts.VisibleToCrew,
				Observation:   ts.Observation,
			})
		}
		b.added = append(b.added, ap)
	}
	return b
}

// FromAddedPlans rebuilds a builder from plans already loaded for display,
// such as the Plans of a document detail. Missing plan and task names are
// filled from the catalog.
func FromAddedPlans(catalog []domain.PlanWithTasks, plans []domain.AddedPlan) *Builder {
	b := NewBuilder(catalog)
	for _, p := range plans {
		if b.isAdded(p.PlanID) {
			continue
		}
		entry := b.catalog[p.PlanID]
		p = clonePlan(p)
		p.Name = domain.CoalesceStr(p.Name, entry.Plan.Name)
		for i := range p.Tasks {
			if p.Tasks[i].Name == "" {
				task, _ := entry.TaskByID(p.Tasks[i].TaskID)
				p.Tasks[i].Name = task.Name
			}
		}
		b.added = append(b.added, p)
	}
	return b
}

// SelectPlan stages a catalog plan with every one of its tasks included and
// visible to crews. It replaces any plan already staged. It reports false and
// changes nothing when the plan is unknown or already added.
func (b *Builder) SelectPlan(planID string) bool {
	entry, ok := b.catalog[planID]
	if !ok || b.isAdded(planID) {
		return false
	}
	staged := domain.AddedPlan{
		PlanID:         planID,
		Name:           entry.Plan.Name,
		ReferencePrice: decimal.Zero,
		Tasks:          make([]domain.StagedTask, 0, len(entry.Tasks)),
	}
	for _, t := range entry.Tasks {
		staged.Tasks = append(staged.Tasks, domain.StagedTask{
			TaskID:        t.ID,
			Name:          t.Name,
			Included:      true,
			VisibleToCrew: true,
		})
	}
	b.staged = &staged
	return true
}

// Staged returns a copy of the working plan, if any.
func (b *Builder) Staged() (domain.AddedPlan, bool) {
	if b.staged == nil {
		return domain.AddedPlan{}, false
	}
	return clonePlan(*b.staged), true
}

// ToggleTaskFlag sets one flag of a staged task.
func (b *Builder) ToggleTaskFlag(taskID string, flag domain.TaskFlag, value bool) error {
	if b.staged == nil {
		return fmt.Errorf("%w: no plan staged", domain.ErrValidation)
	}
	return setFlag(b.staged, taskID, flag, value)
}

// SetObservation sets the free-text note of a staged task.
func (b *Builder) SetObservation(taskID, text string) error {
	if b.staged == nil {
		return fmt.Errorf("%w: no plan staged", domain.ErrValidation)
	}
	return setObservation(b.staged, taskID, text)
}

// RemoveTask drops a task from the working plan so it is never persisted.
// Unlike clearing its included flag, the task will not appear anywhere.
func (b *Builder) RemoveTask(taskID string) bool {
	if b.staged == nil {
		return false
	}
	for i, t := range b.staged.Tasks {
		if t.TaskID == taskID {
			b.staged.Tasks = append(b.staged.Tasks[:i], b.staged.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CommitPlan moves the staged plan into the added plans and clears the
// staging area. It is a no-op when nothing with tasks is staged.
func (b *Builder) CommitPlan() bool {
	if b.staged == nil || len(b.staged.Tasks) == 0 || b.isAdded(b.staged.PlanID) {
		return false
	}
	b.added = append(b.added, *b.staged)
	b.staged = nil
	return true
}

// CanCommit reports whether CommitPlan would add anything.
func (b *Builder) CanCommit() bool {
	return b.staged != nil && len(b.staged.Tasks) > 0 && !b.isAdded(b.staged.PlanID)
}

// ClearStaged discards the working plan.
func (b *Builder) ClearStaged() {
	b.staged = nil
}

// RemoveAddedPlan removes a committed plan together with all of its tasks.
func (b *Builder) RemoveAddedPlan(planID string) bool {
	for i, p := range b.added {
		if p.PlanID == planID {
			b.added = append(b.added[:i], b.added[i+1:]...)
			return true
		}
	}
	return false
}

// AvailablePlans lists catalog plans not yet added, sorted by name.
func (b *Builder) AvailablePlans() []domain.Plan {
	out := make([]domain.Plan, 0, len(b.order))
	for _, id := range b.order {
		if b.isAdded(id) {
			continue
		}
		out = append(out, b.catalog[id].Plan)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddedPlans returns a deep copy of the committed plans in commit order.
func (b *Builder) AddedPlans() []domain.AddedPlan {
	out := make([]domain.AddedPlan, len(b.added))
	for i, p := range b.added {
		out[i] = clonePlan(p)
	}
	return out
}

func (b *Builder) SetReferencePrice(planID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: reference price %s is negative", domain.ErrValidation, price)
	}
	p := b.addedPlan(planID)
	if p == nil {
		return fmt.Errorf("plan %s: %w", planID, domain.ErrNotFound)
	}
	p.ReferencePrice = price
	return nil
}

func (b *Builder) SetCustomName(planID, name string) error {
	p := b.addedPlan(planID)
	if p == nil {
		return fmt.Errorf("plan %s: %w", planID, domain.ErrNotFound)
	}
	p.CustomName = name
	return nil
}

// SetAddedTaskFlag edits a task flag on an already committed plan.
func (b *Builder) SetAddedTaskFlag(planID, taskID string, flag domain.TaskFlag, value bool) error {
	p := b.addedPlan(planID)
	if p == nil {
		return fmt.Errorf("plan %s: %w", planID, domain.ErrNotFound)
	}
	return setFlag(p, taskID, flag, value)
}

// SetAddedObservation edits the note of a task on an already committed plan.
func (b *Builder) SetAddedObservation(planID, taskID, text string) error {
	p := b.addedPlan(planID)
	if p == nil {
		return fmt.Errorf("plan %s: %w", planID, domain.ErrNotFound)
	}
	return setObservation(p, taskID, text)
}

func (b *Builder) isAdded(planID string) bool {
	return b.addedPlan(planID) != nil
}

func (b *Builder) addedPlan(planID string) *domain.AddedPlan {
	for i := range b.added {
		if b.added[i].PlanID == planID {
			return &b.added[i]
		}
	}
	return nil
}

func setFlag(p *domain.AddedPlan, taskID string, flag domain.TaskFlag, value bool) error {
	t := findTask(p, taskID)
	if t == nil {
		return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}
	switch flag {
	case domain.FlagIncluded:
		t.Included = value
	case domain.FlagVisibleToCrew:
		t.VisibleToCrew = value
	default:
		return fmt.Errorf("%w: unknown task flag %q", domain.ErrValidation, flag)
	}
	return nil
}

func setObservation(p *domain.AddedPlan, taskID, text string) error {
	t := findTask(p, taskID)
	if t == nil {
		return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}
	t.Observation = text
	return nil
}

func findTask(p *domain.AddedPlan, taskID string) *domain.StagedTask {
	for i := range p.Tasks {
		if p.Tasks[i].TaskID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

func clonePlan(p domain.AddedPlan) domain.AddedPlan {
	p.Tasks = append([]domain.StagedTask(nil), p.Tasks...)
	return p
}
