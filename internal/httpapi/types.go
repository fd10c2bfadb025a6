package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/scheduler"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var timeNow = func() time.Time { return time.Now().UTC() }

// Wire types. Dates travel as YYYY-MM-DD, timestamps as RFC 3339.

type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Task struct {
	ID     string `json:"id"`
	PlanID string `json:"plan_id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

// CatalogPlan is a plan with the tasks it owns.
type CatalogPlan struct {
	Plan
	Tasks []Task `json:"tasks"`
}

type City struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Leader string `json:"leader,omitempty"`
}

type Client struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	CityID         string `json:"city_id,omitempty"`
	Status         string `json:"status"`
	ContactName    string `json:"contact_name,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty"`
	LocationLink   string `json:"location_link,omitempty"`
	Notes          string `json:"notes,omitempty"`
	OnboardingDate string `json:"onboarding_date,omitempty"`
	AcceptanceDate string `json:"acceptance_date,omitempty"`
}

type Quote struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	ClientID         string `json:"client_id"`
	CreationDate     string `json:"creation_date"`
	Status           string `json:"status"`
	SendDate         string `json:"send_date,omitempty"`
	AcceptanceDate   string `json:"acceptance_date,omitempty"`
	Considerations   string `json:"considerations,omitempty"`
	EconomicProposal string `json:"economic_proposal,omitempty"`
}

type Contract struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	TeamID    string `json:"team_id"`
	QuoteID   string `json:"quote_id,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Frequency string `json:"frequency"`
	VisitDay  string `json:"visit_day"`
}

type Visit struct {
	ID              string `json:"id"`
	ClientID        string `json:"client_id"`
	ContractID      string `json:"contract_id"`
	TeamID          string `json:"team_id"`
	Date            string `json:"date"`
	OriginalDate    string `json:"original_date,omitempty"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	CrewObservation string `json:"crew_observation,omitempty"`
	ClosedBy        string `json:"closed_by,omitempty"`
}

// SelectedTask is one task of a plan inside a quote or contract.
type SelectedTask struct {
	TaskID        string `json:"task_id"`
	Name          string `json:"name,omitempty"`
	Included      bool   `json:"included"`
	VisibleToCrew bool   `json:"visible_to_crew"`
	Observation   string `json:"observation,omitempty"`
}

type SelectedPlan struct {
	PlanID         string          `json:"plan_id"`
	Name           string          `json:"name"`
	CustomName     string          `json:"custom_name,omitempty"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
	Tasks          []SelectedTask  `json:"tasks"`
}

type QuoteDetail struct {
	Quote    Quote          `json:"quote"`
	Client   Client         `json:"client"`
	CityName string         `json:"city_name,omitempty"`
	Plans    []SelectedPlan `json:"plans"`
}

type ContractDetail struct {
	Contract Contract       `json:"contract"`
	TeamName string         `json:"team_name"`
	Client   Client         `json:"client"`
	CityName string         `json:"city_name,omitempty"`
	Plans    []SelectedPlan `json:"plans"`
}

type Document struct {
	Title    string   `json:"title"`
	Included []string `json:"included"`
	Excluded []string `json:"excluded"`
	Text     string   `json:"text"`
}

type SheetTask struct {
	TaskSelectionID string `json:"task_selection_id,omitempty"`
	TaskID          string `json:"task_id"`
	Name            string `json:"name"`
	PlanName        string `json:"plan_name"`
	Note            string `json:"note,omitempty"`
	Done            bool   `json:"done"`
}

type Sheet struct {
	Visit       Visit       `json:"visit"`
	ClientName  string      `json:"client_name"`
	Address     string      `json:"address"`
	TeamName    string      `json:"team_name"`
	Tasks       []SheetTask `json:"tasks"`
	Observation string      `json:"observation,omitempty"`
}

type RouteStop struct {
	Visit      Visit    `json:"visit"`
	ClientName string   `json:"client_name"`
	Address    string   `json:"address"`
	TeamName   string   `json:"team_name"`
	Tasks      []string `json:"tasks"`
}

// ScheduleResult is the outcome of agenda generation for one contract.
type ScheduleResult struct {
	Message string  `json:"message"`
	Created []Visit `json:"created"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", domain.ErrValidation, field, s)
	}
	return t, nil
}

func toPlan(p *domain.Plan) Plan {
	return Plan{ID: p.ID, Name: p.Name, Description: p.Description}
}

func toTask(t *domain.Task) Task {
	return Task{ID: t.ID, PlanID: t.PlanID, Name: t.Name, Kind: string(t.Kind)}
}

func toCatalog(plans []domain.PlanWithTasks) []CatalogPlan {
	out := make([]CatalogPlan, 0, len(plans))
	for _, p := range plans {
		cp := CatalogPlan{Plan: toPlan(&p.Plan), Tasks: make([]Task, 0, len(p.Tasks))}
		for i := range p.Tasks {
			cp.Tasks = append(cp.Tasks, toTask(&p.Tasks[i]))
		}
		out = append(out, cp)
	}
	return out
}

func toCity(c *domain.City) City {
	return City{ID: c.ID, Name: c.Name, Region: c.Region}
}

func toTeam(t *domain.Team) Team {
	return Team{ID: t.ID, Name: t.Name, Leader: t.Leader}
}

func toClient(c *domain.Client) Client {
	return Client{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		CityID:         c.CityID,
		Status:         string(c.Status),
		ContactName:    c.ContactName,
		ContactPhone:   c.ContactPhone,
		ContactEmail:   c.ContactEmail,
		LocationLink:   c.LocationLink,
		Notes:          c.Notes,
		OnboardingDate: formatDate(c.OnboardingDate),
		AcceptanceDate: formatDatePtr(c.AcceptanceDate),
	}
}

func toQuote(q *domain.Quote) Quote {
	return Quote{
		ID:               q.ID,
		Number:           service.DocumentNumber(q.ID),
		ClientID:         q.ClientID,
		CreationDate:     formatDate(q.CreationDate),
		Status:           string(q.Status),
		SendDate:         formatDatePtr(q.SendDate),
		AcceptanceDate:   formatDatePtr(q.AcceptanceDate),
		Considerations:   q.Considerations,
		EconomicProposal: q.EconomicProposal,
	}
}

func toContract(c *domain.Contract) Contract {
	out := Contract{
		ID:        c.ID,
		ClientID:  c.ClientID,
		TeamID:    c.TeamID,
		StartDate: formatDate(c.StartDate),
		EndDate:   formatDate(c.EndDate),
		Status:    string(c.Status),
		Frequency: string(c.Frequency),
		VisitDay:  domain.WeekdayName(c.VisitDay),
	}
	if c.QuoteID != nil {
		out.QuoteID = *c.QuoteID
	}
	return out
}

func toVisit(v *domain.Visit) Visit {
	return Visit{
		ID:              v.ID,
		ClientID:        v.ClientID,
		ContractID:      v.ContractID,
		TeamID:          v.TeamID,
		Date:            formatDate(v.Date),
		OriginalDate:    formatDate(v.OriginalDate),
		Type:            string(v.Type),
		Status:          string(v.Status),
		CrewObservation: v.CrewObservation,
		ClosedBy:        v.ClosedBy,
	}
}

func toVisits(vs []*domain.Visit) []Visit {
	out := make([]Visit, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVisit(v))
	}
	return out
}

func toSelectedPlans(plans []domain.AddedPlan) []SelectedPlan {
	out := make([]SelectedPlan, 0, len(plans))
	for _, p := range plans {
		sp := SelectedPlan{
			PlanID:         p.PlanID,
			Name:           p.Name,
			CustomName:     p.CustomName,
			ReferencePrice: p.ReferencePrice,
			Tasks:          make([]SelectedTask, 0, len(p.Tasks)),
		}
		for _, t := range p.Tasks {
			sp.Tasks = append(sp.Tasks, SelectedTask{
				TaskID:        t.TaskID,
				Name:          t.Name,
				Included:      t.Included,
				VisibleToCrew: t.VisibleToCrew,
				Observation:   t.Observation,
			})
		}
		out = append(out, sp)
	}
	return out
}

func toQuoteDetail(d *service.QuoteDetail) QuoteDetail {
	return QuoteDetail{
		Quote:    toQuote(d.Quote),
		Client:   toClient(d.Client),
		CityName: d.CityName,
		Plans:    toSelectedPlans(d.Plans),
	}
}

func toContractDetail(d *service.ContractDetail) ContractDetail {
	return ContractDetail{
		Contract: toContract(d.Contract),
		TeamName: d.TeamName,
		Client:   toClient(d.Client),
		CityName: d.CityName,
		Plans:    toSelectedPlans(d.Plans),
	}
}

func toDocument(doc *document.Document) Document {
	out := Document{
		Title:    doc.Title,
		Included: make([]string, 0, len(doc.Included)),
		Excluded: make([]string, 0, len(doc.Excluded)),
		Text:     document.RenderText(*doc),
	}
	for _, l := range doc.Included {
		out.Included = append(out.Included, l.Name)
	}
	for _, l := range doc.Excluded {
		out.Excluded = append(out.Excluded, l.Name)
	}
	return out
}

func toSheet(s *dispatch.Sheet) Sheet {
	out := Sheet{
		Visit:       toVisit(&s.Visit),
		ClientName:  s.ClientName,
		Address:     s.Address,
		TeamName:    s.TeamName,
		Tasks:       make([]SheetTask, 0, len(s.Tasks)),
		Observation: s.Observation,
	}
	for _, t := range s.Tasks {
		out.Tasks = append(out.Tasks, SheetTask(t))
	}
	return out
}

func toRoute(stops []scheduler.RouteStop) []RouteStop {
	out := make([]RouteStop, 0, len(stops))
	for _, st := range stops {
		out = append(out, RouteStop{
			Visit:      toVisit(&st.Visit),
			ClientName: st.ClientName,
			Address:    st.Address,
			TeamName:   st.TeamName,
			Tasks:      st.Tasks,
		})
	}
	return out
}
