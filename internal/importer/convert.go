package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/google/uuid"
)

// Catalog is a converted import ready for persistence.
type Catalog struct {
	Plans []domain.PlanWithTasks
	// RefMap maps each plan ref in the file to the generated plan id.
	RefMap map[string]string
}

// Convert transforms a validated CatalogSchema into domain objects.
// Call ValidateCatalogSchema first; Convert assumes the schema is valid.
func Convert(schema *CatalogSchema) *Catalog {
	now := time.Now().UTC()
	out := &Catalog{RefMap: make(map[string]string, len(schema.Plans))}

	for _, p := range schema.Plans {
		plan := domain.Plan{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(p.Name),
			Description: strings.TrimSpace(p.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		out.RefMap[p.Ref] = plan.ID

		tasks := make([]domain.Task, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			kind := domain.TaskKind(t.Kind)
			if kind == "" {
				kind = domain.TaskPredefined
			}
			tasks = append(tasks, domain.Task{
				ID:        uuid.New().String(),
				PlanID:    plan.ID,
				Name:      strings.TrimSpace(t.Name),
				Kind:      kind,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		out.Plans = append(out.Plans, domain.PlanWithTasks{Plan: plan, Tasks: tasks})
	}

	return out
}

// TaskCount returns the number of tasks across all converted plans.
func (c *Catalog) TaskCount() int {
	n := 0
	for _, p := range c.Plans {
		n += len(p.Tasks)
	}
	return n
}
