package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/composer"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// composeFlags describes plan and task edits applied to a composer.Builder.
// Task references accept "Task" or "Plan/Task"; plan keys accept a catalog
// name, a custom name or an id prefix.
type composeFlags struct {
	plans   []string
	drop    []string
	exclude []string
	include []string
	hide    []string
	show    []string
	notes   []string
	prices  []string
	names   []string
}

func (f *composeFlags) register(fs *pflag.FlagSet, planFlag string) {
	fs.StringArrayVar(&f.plans, planFlag, nil, "Catalog plan to add, by name or ID (repeatable)")
	fs.StringArrayVar(&f.drop, "drop", nil, "Remove a task from a newly added plan entirely")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "List a task as not included")
	fs.StringArrayVar(&f.include, "include", nil, "List a task as included")
	fs.StringArrayVar(&f.hide, "hide", nil, "Hide a task from crew sheets")
	fs.StringArrayVar(&f.show, "show", nil, "Show a task on crew sheets")
	fs.StringArrayVar(&f.notes, "note", nil, "Task observation as TASK=text")
	fs.StringArrayVar(&f.prices, "price", nil, "Reference price as PLAN=amount")
	fs.StringArrayVar(&f.names, "name", nil, "Custom plan name as PLAN=name")
}

func (f *composeFlags) empty() bool {
	return len(f.plans)+len(f.drop)+len(f.exclude)+len(f.include)+len(f.hide)+
		len(f.show)+len(f.notes)+len(f.prices)+len(f.names) == 0
}

// apply adds f.plans to b, then edits the tasks and plans b holds.
func (f *composeFlags) apply(b *composer.Builder, catalog []domain.PlanWithTasks) error {
	refs := make([]ref, len(catalog))
	for i, p := range catalog {
		refs[i] = ref{p.Plan.ID, p.Plan.Name}
	}

	drops := parseTaskRefs(f.drop)
	dropped := make([]bool, len(drops))
	for _, input := range f.plans {
		planID, err := resolveID("plan", input, refs)
		if err != nil {
			return err
		}
		if !b.SelectPlan(planID) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicatePlan, input)
		}
		staged, _ := b.Staged()
		for _, t := range staged.Tasks {
			for i, r := range drops {
				if r.matches(staged.PlanID, staged.Name, t.TaskID, t.Name) {
					b.RemoveTask(t.TaskID)
					dropped[i] = true
				}
			}
		}
		if !b.CommitPlan() {
			b.ClearStaged()
			return fmt.Errorf("%w: plan %s has no tasks left", domain.ErrValidation, staged.Name)
		}
	}
	for i, ok := range dropped {
		if !ok {
			return fmt.Errorf("%w: --drop %q matches no task", domain.ErrValidation, drops[i].raw)
		}
	}

	flags := []struct {
		name  string
		refs  []string
		flag  domain.TaskFlag
		value bool
	}{
		{"exclude", f.exclude, domain.FlagIncluded, false},
		{"include", f.include, domain.FlagIncluded, true},
		{"hide", f.hide, domain.FlagVisibleToCrew, false},
		{"show", f.show, domain.FlagVisibleToCrew, true},
	}
	for _, fl := range flags {
		for _, r := range parseTaskRefs(fl.refs) {
			err := eachTask(b, r, "--"+fl.name, func(planID, taskID string) error {
				return b.SetAddedTaskFlag(planID, taskID, fl.flag, fl.value)
			})
			if err != nil {
				return err
			}
		}
	}

	for _, n := range f.notes {
		key, text, err := splitPair("note", n)
		if err != nil {
			return err
		}
		err = eachTask(b, parseTaskRef(key), "--note", func(planID, taskID string) error {
			return b.SetAddedObservation(planID, taskID, strings.TrimSpace(text))
		})
		if err != nil {
			return err
		}
	}

	for _, p := range f.prices {
		key, value, err := splitPair("price", p)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: --price %q: %v", domain.ErrValidation, p, err)
		}
		planID, err := addedPlanID(b, key)
		if err != nil {
			return err
		}
		if err := b.SetReferencePrice(planID, price); err != nil {
			return err
		}
	}

	for _, n := range f.names {
		key, name, err := splitPair("name", n)
		if err != nil {
			return err
		}
		planID, err := addedPlanID(b, key)
		if err != nil {
			return err
		}
		if err := b.SetCustomName(planID, strings.TrimSpace(name)); err != nil {
			return err
		}
	}
	return nil
}

// removePlans drops added plans by name or id.
func removePlans(b *composer.Builder, inputs []string) error {
	for _, input := range inputs {
		planID, err := addedPlanID(b, input)
		if err != nil {
			return err
		}
		b.RemoveAddedPlan(planID)
	}
	return nil
}

func parseTaskRefs(in []string) []taskRef {
	out := make([]taskRef, len(in))
	for i, s := range in {
		out[i] = parseTaskRef(s)
	}
	return out
}

// eachTask calls fn for every added task r matches. No match is an error.
func eachTask(b *composer.Builder, r taskRef, flag string, fn func(planID, taskID string) error) error {
	matched := false
	for _, p := range b.AddedPlans() {
		for _, t := range p.Tasks {
			if !r.matches(p.PlanID, p.DisplayName(), t.TaskID, t.Name) && !r.matches(p.PlanID, p.Name, t.TaskID, t.Name) {
				continue
			}
			matched = true
			if err := fn(p.PlanID, t.TaskID); err != nil {
				return err
			}
		}
	}
	if !matched {
		return fmt.Errorf("%w: %s %q matches no added task", domain.ErrValidation, flag, r.raw)
	}
	return nil
}

func addedPlanID(b *composer.Builder, input string) (string, error) {
	added := b.AddedPlans()
	refs := make([]ref, 0, 2*len(added))
	for _, p := range added {
		refs = append(refs, ref{p.PlanID, p.Name})
		if p.CustomName != "" {
			refs = append(refs, ref{p.PlanID, p.CustomName})
		}
	}
	id, err := resolveID("added plan", input, refs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return id, nil
}
