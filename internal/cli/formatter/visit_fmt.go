package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/scheduler"
)

func FormatVisitList(visits []*domain.Visit) string {
	if len(visits) == 0 {
		return RenderBox("Visits", Dim("No visits found."))
	}
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			ShortID(v.ID),
			Date(v.Date),
			ShortID(v.ContractID),
			string(v.Type),
			Status(string(v.Status)),
		})
	}
	return RenderBox("Visits", RenderTable([]string{"ID", "DATE", "CONTRACT", "TYPE", "STATUS"}, rows))
}

// FormatRoute renders a route sheet grouped by day.
func FormatRoute(stops []scheduler.RouteStop) string {
	if len(stops) == 0 {
		return RenderBox("Route", Dim("No visits in this range."))
	}
	var b strings.Builder
	var day string
	for _, s := range stops {
		if d := Date(s.Visit.Date); d != day {
			if day != "" {
				b.WriteString("\n")
			}
			day = d
			b.WriteString(Header(d) + "\n")
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			Dim(ShortID(s.Visit.ID)), Bold(s.ClientName), StyleBlue.Render(s.TeamName), Status(string(s.Visit.Status)))
		if s.Address != "" {
			b.WriteString("    " + Dim(s.Address) + "\n")
		}
		if len(s.Tasks) > 0 {
			b.WriteString("    " + strings.Join(s.Tasks, ", ") + "\n")
		}
	}
	return RenderBox("Route", strings.TrimRight(b.String(), "\n"))
}

// FormatSheet renders a crew sheet with one numbered line per task.
func FormatSheet(s *dispatch.Sheet) string {
	lines := []string{
		Bold(s.ClientName) + "  " + Status(string(s.Visit.Status)),
		Field("Date", Date(s.Visit.Date)),
		Field("Address", s.Address),
		Field("Team", s.TeamName),
		"",
	}
	if len(s.Tasks) == 0 {
		lines = append(lines, Dim("No tasks visible to crews."))
	}
	for i, t := range s.Tasks {
		line := fmt.Sprintf("%2d. %s %s %s", i+1, Check(t.Done), t.Name, Dim(t.PlanName))
		lines = append(lines, line)
		if t.Note != "" {
			lines = append(lines, "       "+StyleYellow.Render(t.Note))
		}
	}
	if len(s.Tasks) > 0 {
		lines = append(lines, "", RenderProgress(s.DoneCount(), len(s.Tasks), 12))
	}
	if s.Observation != "" {
		lines = append(lines, "", Field("Observation", s.Observation))
	}
	return RenderBox("Visit sheet", strings.Join(lines, "\n"))
}
