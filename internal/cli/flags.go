package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateValue is a pflag.Value holding a YYYY-MM-DD calendar date at UTC midnight.
type dateValue struct {
	t *time.Time
}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d dateValue) Set(s string) error {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	*d.t = t
	return nil
}

func (dateValue) Type() string { return "date" }

// dateVar registers a date flag on fs.
func dateVar(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(dateValue{t: p}, name, usage)
}

// splitPair splits "KEY=VALUE". The key is trimmed; the value is kept as is.
func splitPair(flag, s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("--%s %q: want KEY=VALUE", flag, s)
	}
	return key, value, nil
}

// taskRef names a task, optionally qualified by its plan: "Pruning" or
// "Garden beds/Pruning". Either part can be a name or an id prefix.
type taskRef struct {
	plan string
	task string
	raw  string
}

func parseTaskRef(s string) taskRef {
	r := taskRef{raw: s, task: strings.TrimSpace(s)}
	if plan, task, ok := strings.Cut(s, "/"); ok {
		r.plan = strings.TrimSpace(plan)
		r.task = strings.TrimSpace(task)
	}
	return r
}

// matches reports whether the reference points at name/id, optionally
// restricted to a plan.
func (r taskRef) matches(planID, planName, taskID, taskName string) bool {
	if r.plan != "" && !refMatches(r.plan, planID, planName) {
		return false
	}
	return refMatches(r.task, taskID, taskName)
}

func refMatches(input, id, name string) bool {
	if input == "" {
		return false
	}
	return id == input || strings.EqualFold(name, input) || strings.HasPrefix(id, strings.ToLower(input))
}
