package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/jardin/internal/repository"
)

// ref is one candidate for resolveID: an entity id and its display name.
type ref struct {
	id   string
	name string
}

// resolveID resolves user input to an entity id. Input can be:
//   - An exact id
//   - An exact name (case-insensitive)
//   - A unique id prefix (case-insensitive, so document numbers work)
func resolveID(kind, input string, refs []ref) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, r := range refs {
		if r.id == input {
			return r.id, nil
		}
	}

	var byName []string
	for _, r := range refs {
		if r.name != "" && strings.EqualFold(r.name, input) && !slices.Contains(byName, r.id) {
			byName = append(byName, r.id)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches)", kind, input, len(byName))
	}

	lower := strings.ToLower(input)
	var matches []string
	for _, r := range refs {
		if slices.Contains(matches, r.id) {
			continue
		}
		if strings.HasPrefix(strings.ReplaceAll(r.id, "-", ""), lower) || strings.HasPrefix(r.id, lower) {
			matches = append(matches, r.id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	plans, err := app.Catalog.ListPlans(ctx)
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(plans))
	for i, p := range plans {
		refs[i] = ref{p.ID, p.Name}
	}
	return resolveID("plan", input, refs)
}

func resolveCityID(ctx context.Context, app *App, input string) (string, error) {
	cities, err := app.Catalog.ListCities(ctx)
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(cities))
	for i, c := range cities {
		refs[i] = ref{c.ID, c.Name}
	}
	return resolveID("city", input, refs)
}

func resolveTeamID(ctx context.Context, app *App, input string) (string, error) {
	teams, err := app.Catalog.ListTeams(ctx)
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(teams))
	for i, t := range teams {
		refs[i] = ref{t.ID, t.Name}
	}
	return resolveID("team", input, refs)
}

func resolveClientID(ctx context.Context, app *App, input string) (string, error) {
	clients, err := app.Clients.List(ctx, "")
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(clients))
	for i, c := range clients {
		refs[i] = ref{c.ID, c.Name}
	}
	return resolveID("client", input, refs)
}

func resolveQuoteID(ctx context.Context, app *App, input string) (string, error) {
	quotes, err := app.Quotes.List(ctx, "")
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(quotes))
	for i, q := range quotes {
		refs[i] = ref{id: q.ID}
	}
	return resolveID("quote", strings.TrimPrefix(input, "#"), refs)
}

func resolveContractID(ctx context.Context, app *App, input string) (string, error) {
	contracts, err := app.Contracts.List(ctx, "")
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(contracts))
	for i, c := range contracts {
		refs[i] = ref{id: c.ID}
	}
	return resolveID("contract", strings.TrimPrefix(input, "#"), refs)
}

func resolveVisitID(ctx context.Context, app *App, input string) (string, error) {
	if _, err := app.Visits.GetByID(ctx, input); err == nil {
		return input, nil
	}
	visits, err := app.Visits.List(ctx, repository.VisitFilter{})
	if err != nil {
		return "", err
	}
	refs := make([]ref, len(visits))
	for i, v := range visits {
		refs[i] = ref{id: v.ID}
	}
	return resolveID("visit", input, refs)
}
