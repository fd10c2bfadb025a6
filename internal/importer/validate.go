package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
)

// ValidateCatalogSchema checks the import schema before conversion.
// Returns every validation error found, not just the first.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	if len(schema.Plans) == 0 {
		errs = append(errs, fmt.Errorf("plans: at least one plan is required"))
	}

	refs := make(map[string]bool)
	names := make(map[string]bool)
	for i, p := range schema.Plans {
		prefix := fmt.Sprintf("plans[%d]", i)

		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[p.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, p.Ref))
		} else {
			refs[p.Ref] = true
		}

		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if key := strings.ToLower(name); names[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate plan name %q", prefix, name))
		} else {
			names[key] = true
		}

		if len(p.Tasks) == 0 {
			errs = append(errs, fmt.Errorf("%s.tasks: plan %q has no tasks", prefix, p.Ref))
		}
		errs = append(errs, validateTasks(prefix, p.Tasks)...)
	}

	return errs
}

func validateTasks(prefix string, tasks []TaskImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for j, t := range tasks {
		tp := fmt.Sprintf("%s.tasks[%d]", prefix, j)
		name := strings.TrimSpace(t.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", tp))
		} else if key := strings.ToLower(name); seen[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate task %q in plan", tp, name))
		} else {
			seen[key] = true
		}
		if t.Kind != "" && !domain.TaskKind(t.Kind).Valid() {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", tp, t.Kind))
		}
	}
	return errs
}
