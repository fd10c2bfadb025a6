package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/scheduler"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var day = time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

func lawnPlan() domain.AddedPlan {
	return domain.AddedPlan{
		PlanID:         "p1",
		Name:           "Lawn care",
		CustomName:     "Front lawn",
		ReferencePrice: decimal.NewFromInt(45000),
		Tasks: []domain.StagedTask{
			{TaskID: "t1", Name: "Mowing", Included: true, VisibleToCrew: true, Observation: "Leave clippings"},
			{TaskID: "t2", Name: "Edging", Included: false, VisibleToCrew: false},
		},
	}
}

func TestFormatCatalog(t *testing.T) {
	out := stripANSI(FormatCatalog([]domain.PlanWithTasks{{
		Plan:  domain.Plan{ID: "plan-0001-xyz", Name: "Lawn care", Description: "Weekly lawn"},
		Tasks: []domain.Task{{ID: "task-0001-xyz", Name: "Mowing", Kind: domain.TaskPredefined}, {ID: "t2", Name: "Pond", Kind: domain.TaskCustom}},
	}}))
	assert.Contains(t, out, "Lawn care")
	assert.Contains(t, out, "plan-000")
	assert.Contains(t, out, "• Mowing")
	assert.Contains(t, out, "Pond custom")
	assert.Contains(t, out, "Weekly lawn")
}

func TestFormatCatalog_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatCatalog(nil)), "No plans yet")
}

func TestFormatClientList(t *testing.T) {
	out := stripANSI(FormatClientList([]*domain.Client{
		{ID: "c1", Name: "Casa Verde", Address: "Av. Central 12", CityID: "city1", Status: domain.ClientProspect},
	}, map[string]string{"city1": "Santiago"}))
	assert.Contains(t, out, "Casa Verde")
	assert.Contains(t, out, "Santiago")
	assert.Contains(t, out, "prospect")
}

func TestFormatClient(t *testing.T) {
	out := stripANSI(FormatClient(&domain.Client{
		ID: "c1", Name: "Casa Verde", Address: "Av. Central 12", Status: domain.ClientActive,
		OnboardingDate: day, AcceptanceDate: &day, Notes: "Gate code 1234",
	}, "Santiago"))
	assert.Contains(t, out, "Address: Av. Central 12, Santiago")
	assert.Contains(t, out, "Accepted: Tue 04 Mar 2025")
	assert.Contains(t, out, "Gate code 1234")
}

func TestFormatPlans(t *testing.T) {
	out := stripANSI(FormatPlans([]domain.AddedPlan{lawnPlan()}))
	assert.Contains(t, out, "Front lawn (Lawn care)  45000")
	assert.Contains(t, out, "[x] Mowing")
	assert.Contains(t, out, "Leave clippings")
	assert.Contains(t, out, "[ ] Edging (excluded) hidden from crew")
}

func TestFormatQuoteDetail(t *testing.T) {
	out := stripANSI(FormatQuoteDetail(&service.QuoteDetail{
		Quote: &domain.Quote{
			ID: "abcd1234-0000", Status: domain.QuoteSent, CreationDate: day, SendDate: &day,
			Considerations: "Water access provided by client.",
		},
		DocumentDetail: service.DocumentDetail{
			Client:   &domain.Client{Name: "Casa Verde"},
			CityName: "Santiago",
			Plans:    []domain.AddedPlan{lawnPlan()},
		},
	}))
	assert.Contains(t, out, "#ABCD1234")
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "Client: Casa Verde")
	assert.Contains(t, out, "CONSIDERATIONS")
	assert.NotContains(t, out, "ECONOMIC PROPOSAL")
}

func TestFormatQuoteList(t *testing.T) {
	out := stripANSI(FormatQuoteList([]*domain.Quote{
		{ID: "abcd1234-0000", ClientID: "c1", Status: domain.QuotePending, CreationDate: day},
	}, map[string]string{"c1": "Casa Verde"}))
	assert.Contains(t, out, "ABCD1234")
	assert.Contains(t, out, "Casa Verde")
	assert.Contains(t, out, "pending")
}

func TestFormatContractDetail(t *testing.T) {
	quoteID := "feed0000-1111"
	out := stripANSI(FormatContractDetail(&service.ContractDetail{
		Contract: &domain.Contract{
			ID: "beef0000-1111", QuoteID: &quoteID, Status: domain.ContractActive,
			Frequency: domain.FrequencyOneOff, VisitDay: time.Tuesday,
			StartDate: day, EndDate: day.AddDate(0, 1, 0),
		},
		TeamName:       "North crew",
		DocumentDetail: service.DocumentDetail{Client: &domain.Client{Name: "Casa Verde"}},
	}))
	assert.Contains(t, out, "#BEEF0000")
	assert.Contains(t, out, "Schedule: one off on tuesday")
	assert.Contains(t, out, "Origin: quote #FEED0000")
	assert.Contains(t, out, "Team: North crew")
	assert.Contains(t, out, "No plans added.")
}

func TestFormatContractList(t *testing.T) {
	out := stripANSI(FormatContractList([]*domain.Contract{
		{ID: "beef0000-1111", ClientID: "c1", TeamID: "t1", Status: domain.ContractActive,
			Frequency: domain.FrequencyWeekly, VisitDay: time.Friday, StartDate: day, EndDate: day},
	}, map[string]string{"c1": "Casa Verde"}, map[string]string{"t1": "North crew"}))
	assert.Contains(t, out, "weekly on friday")
	assert.Contains(t, out, "North crew")
}

func TestFormatRoute_GroupsByDay(t *testing.T) {
	out := stripANSI(FormatRoute([]scheduler.RouteStop{
		{Visit: domain.Visit{ID: "v1", Date: day, Status: domain.VisitScheduled}, ClientName: "Casa Verde", TeamName: "North", Tasks: []string{"Mowing", "Edging"}},
		{Visit: domain.Visit{ID: "v2", Date: day, Status: domain.VisitCompleted}, ClientName: "Villa Sol", TeamName: "North"},
		{Visit: domain.Visit{ID: "v3", Date: day.AddDate(0, 0, 1), Status: domain.VisitScheduled}, ClientName: "Casa Verde", TeamName: "North"},
	}))
	assert.Contains(t, out, "TUE 04 MAR 2025")
	assert.Contains(t, out, "WED 05 MAR 2025")
	assert.Contains(t, out, "Mowing, Edging")
	assert.Contains(t, out, "completed")
}

func TestFormatSheet(t *testing.T) {
	out := stripANSI(FormatSheet(&dispatch.Sheet{
		Visit:      domain.Visit{Date: day, Status: domain.VisitInProgress},
		ClientName: "Casa Verde",
		TeamName:   "North crew",
		Tasks: []dispatch.SheetTask{
			{TaskSelectionID: "ts1", Name: "Mowing", PlanName: "Lawn care", Done: true},
			{TaskSelectionID: "ts2", Name: "Weeding", PlanName: "Garden beds", Note: "Avoid the roses"},
		},
		Observation: "Hose leaking",
	}))
	assert.Contains(t, out, " 1. [x] Mowing Lawn care")
	assert.Contains(t, out, " 2. [ ] Weeding Garden beds")
	assert.Contains(t, out, "Avoid the roses")
	assert.Contains(t, out, "Observation: Hose leaking")
	assert.Contains(t, out, "1/2 done")
	assert.Contains(t, out, "in progress")
}

func TestFormatVisitList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatVisitList(nil)), "No visits found.")
}
