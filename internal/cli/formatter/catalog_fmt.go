package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
)

// FormatCatalog renders every plan with its tasks, one section per plan.
func FormatCatalog(catalog []domain.PlanWithTasks) string {
	if len(catalog) == 0 {
		return RenderBox("Catalog", Dim("No plans yet. Add one with `jardin catalog plan add`."))
	}

	var b strings.Builder
	for i, p := range catalog {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", Bold(p.Plan.Name), Dim(ShortID(p.Plan.ID)))
		if p.Plan.Description != "" {
			b.WriteString("  " + Dim(p.Plan.Description) + "\n")
		}
		if len(p.Tasks) == 0 {
			b.WriteString("  " + Dim("(no tasks)") + "\n")
			continue
		}
		for _, t := range p.Tasks {
			kind := ""
			if t.Kind == domain.TaskCustom {
				kind = " " + StyleYellow.Render("custom")
			}
			fmt.Fprintf(&b, "  • %s%s  %s\n", t.Name, kind, Dim(ShortID(t.ID)))
		}
	}
	return RenderBox("Catalog", strings.TrimRight(b.String(), "\n"))
}

func FormatCities(cities []*domain.City) string {
	rows := make([][]string, 0, len(cities))
	for _, c := range cities {
		rows = append(rows, []string{ShortID(c.ID), Bold(c.Name), CoalesceDim(c.Region)})
	}
	return RenderBox("Cities", RenderTable([]string{"ID", "NAME", "REGION"}, rows))
}

func FormatTeams(teams []*domain.Team) string {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{ShortID(t.ID), Bold(t.Name), CoalesceDim(t.Leader)})
	}
	return RenderBox("Teams", RenderTable([]string{"ID", "NAME", "LEADER"}, rows))
}

// CoalesceDim returns s, or a dim "--" when s is empty.
func CoalesceDim(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
