package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/service"
)

// FormatQuoteList renders quotes in a table. clientNames maps client id to name.
func FormatQuoteList(quotes []*domain.Quote, clientNames map[string]string) string {
	if len(quotes) == 0 {
		return RenderBox("Quotes", Dim("No quotes found."))
	}
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			service.DocumentNumber(q.ID),
			Bold(CoalesceDim(clientNames[q.ClientID])),
			Date(q.CreationDate),
			Status(string(q.Status)),
			DatePtr(q.SendDate),
		})
	}
	return RenderBox("Quotes", RenderTable([]string{"NUMBER", "CLIENT", "CREATED", "STATUS", "SENT"}, rows))
}

// FormatQuoteDetail renders one quote with its composed plans.
func FormatQuoteDetail(d *service.QuoteDetail) string {
	q := d.Quote
	lines := []string{
		Bold("#"+service.DocumentNumber(q.ID)) + "  " + Status(string(q.Status)),
		"",
		Field("Client", clientName(d.Client)),
		Field("City", d.CityName),
		Field("Created", Date(q.CreationDate)),
		Field("Sent", DatePtr(q.SendDate)),
		Field("Accepted", DatePtr(q.AcceptanceDate)),
		"",
		FormatPlans(d.Plans),
	}
	if s := strings.TrimSpace(q.Considerations); s != "" {
		lines = append(lines, "", Header("Considerations"), s)
	}
	if s := strings.TrimSpace(q.EconomicProposal); s != "" {
		lines = append(lines, "", Header("Economic proposal"), s)
	}
	return RenderBox("Quote", strings.Join(lines, "\n"))
}

func FormatContractList(contracts []*domain.Contract, clientNames, teamNames map[string]string) string {
	if len(contracts) == 0 {
		return RenderBox("Contracts", Dim("No contracts found."))
	}
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{
			service.DocumentNumber(c.ID),
			Bold(CoalesceDim(clientNames[c.ClientID])),
			CoalesceDim(teamNames[c.TeamID]),
			schedule(c),
			Date(c.StartDate) + " → " + Date(c.EndDate),
			Status(string(c.Status)),
		})
	}
	return RenderBox("Contracts", RenderTable([]string{"NUMBER", "CLIENT", "TEAM", "SCHEDULE", "PERIOD", "STATUS"}, rows))
}

func FormatContractDetail(d *service.ContractDetail) string {
	c := d.Contract
	origin := ""
	if c.QuoteID != nil {
		origin = "quote #" + service.DocumentNumber(*c.QuoteID)
	}
	lines := []string{
		Bold("#"+service.DocumentNumber(c.ID)) + "  " + Status(string(c.Status)),
		"",
		Field("Client", clientName(d.Client)),
		Field("City", d.CityName),
		Field("Team", d.TeamName),
		Field("Schedule", schedule(c)),
		Field("Start", Date(c.StartDate)),
		Field("End", Date(c.EndDate)),
		Field("Origin", origin),
		"",
		FormatPlans(d.Plans),
	}
	return RenderBox("Contract", strings.Join(lines, "\n"))
}

// FormatPlans renders composed plans with per-task included and crew marks.
func FormatPlans(plans []domain.AddedPlan) string {
	if len(plans) == 0 {
		return Dim("No plans added.")
	}
	var b strings.Builder
	b.WriteString(Header("Plans") + "\n")
	for _, p := range plans {
		title := Bold(p.DisplayName())
		if p.CustomName != "" && p.Name != "" {
			title += " " + Dim("("+p.Name+")")
		}
		if !p.ReferencePrice.IsZero() {
			title += "  " + StyleYellow.Render(p.ReferencePrice.StringFixed(0))
		}
		b.WriteString(title + "\n")
		for _, t := range p.Tasks {
			name := t.Name
			if !t.Included {
				name = StyleRed.Render(name + " (excluded)")
			}
			crew := ""
			if !t.VisibleToCrew {
				crew = " " + Dim("hidden from crew")
			}
			fmt.Fprintf(&b, "  %s %s%s\n", Check(t.Included), name, crew)
			if t.Observation != "" {
				b.WriteString("      " + Dim(t.Observation) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func schedule(c *domain.Contract) string {
	return fmt.Sprintf("%s on %s", strings.ReplaceAll(string(c.Frequency), "_", " "), domain.WeekdayName(c.VisitDay))
}

func clientName(c *domain.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}
