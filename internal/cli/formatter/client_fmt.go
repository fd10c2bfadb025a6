package formatter

import (
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
)

// FormatClientList renders clients in a table. cityNames maps city id to name.
func FormatClientList(clients []*domain.Client, cityNames map[string]string) string {
	if len(clients) == 0 {
		return RenderBox("Clients", Dim("No clients found."))
	}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			ShortID(c.ID),
			Bold(c.Name),
			CoalesceDim(c.Address),
			CoalesceDim(cityNames[c.CityID]),
			Status(string(c.Status)),
		})
	}
	return RenderBox("Clients", RenderTable([]string{"ID", "NAME", "ADDRESS", "CITY", "STATUS"}, rows))
}

func FormatClient(c *domain.Client, cityName string) string {
	lines := []string{
		Bold(c.Name) + "  " + Status(string(c.Status)),
		"",
		Field("ID", c.ID),
		Field("Address", joinNonEmpty(", ", c.Address, cityName)),
		Field("Contact", c.ContactName),
		Field("Phone", c.ContactPhone),
		Field("Email", c.ContactEmail),
		Field("Location", c.LocationLink),
		Field("Onboarded", Date(c.OnboardingDate)),
		Field("Accepted", DatePtr(c.AcceptanceDate)),
	}
	if c.Notes != "" {
		lines = append(lines, "", Dim(c.Notes))
	}
	return RenderBox("Client", strings.Join(lines, "\n"))
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
