package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/service"
	"github.com/alexanderramin/jardin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16"

type fixture struct {
	client  *domain.Client
	team    *domain.Team
	lawn    *domain.Plan
	garden  *domain.Plan
	mowing  *domain.Task
	edging  *domain.Task
	blowing *domain.Task
	pruning *domain.Task
	weeding *domain.Task
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	token   string
	fx      *fixture
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	cities := repository.NewSQLiteCityRepo(database)
	teams := repository.NewSQLiteTeamRepo(database)
	clients := repository.NewSQLiteClientRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)

	svc := Services{
		Catalog:   service.NewCatalogService(plans, tasks, cities, teams, clients, uow),
		Clients:   service.NewClientService(clients, cities, uow),
		Quotes:    service.NewQuoteService(repository.NewSQLiteQuoteRepo(database), uow, "Jardines del Valle"),
		Contracts: service.NewContractService(repository.NewSQLiteContractRepo(database), uow, "Jardines del Valle"),
		Visits:    service.NewVisitService(repository.NewSQLiteVisitRepo(database), uow),
	}

	city := testutil.NewTestCity("Santiago")
	fx := &fixture{
		team:   testutil.NewTestTeam("North crew"),
		lawn:   testutil.NewTestPlan("Lawn care"),
		garden: testutil.NewTestPlan("Garden beds"),
	}
	fx.client = testutil.NewTestClient("Casa Verde", testutil.WithCity(city.ID))
	require.NoError(t, cities.Create(ctx, city))
	require.NoError(t, teams.Create(ctx, fx.team))
	require.NoError(t, clients.Create(ctx, fx.client))
	require.NoError(t, plans.Create(ctx, fx.lawn))
	require.NoError(t, plans.Create(ctx, fx.garden))
	fx.mowing = testutil.NewTestTask(fx.lawn.ID, "Mowing")
	fx.edging = testutil.NewTestTask(fx.lawn.ID, "Edging")
	fx.blowing = testutil.NewTestTask(fx.lawn.ID, "Leaf blowing")
	fx.pruning = testutil.NewTestTask(fx.garden.ID, "Pruning")
	fx.weeding = testutil.NewTestTask(fx.garden.ID, "Weeding")
	for _, task := range []*domain.Task{fx.mowing, fx.edging, fx.blowing, fx.pruning, fx.weeding} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	issuer := auth.NewIssuer(testSecret, "jardin", time.Hour)
	token, err := issuer.Issue("ana", "office")
	require.NoError(t, err)

	return &testAPI{
		t:       t,
		handler: NewServer(svc, issuer, nil, 0).Routes(),
		token:   token,
		fx:      fx,
	}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.True(t, resp.Success)
	return resp.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}

// composeBody is the lawn plan with every task plus the garden plan with
// pruning excluded and hidden from crews.
func (a *testAPI) composeBody() map[string]any {
	f := false
	return map[string]any{
		"client_id":         a.fx.client.ID,
		"considerations":    "Water access provided by client.",
		"economic_proposal": "Monthly fee of 120000.",
		"plans": []PlanRequest{
			{PlanID: a.fx.lawn.ID},
			{
				PlanID:     a.fx.garden.ID,
				CustomName: "Front garden",
				Tasks: []TaskRequest{
					{TaskID: a.fx.pruning.ID, Included: &f, VisibleToCrew: &f},
					{TaskID: a.fx.weeding.ID, Observation: "beds by the gate only"},
				},
			},
		},
	}
}

func (a *testAPI) composeQuote() QuoteDetail {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/v1/quotes/compose", a.composeBody())
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[QuoteDetail](a.t, rec)
}

func TestHealth_NoAuth(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	rec := api.do(http.MethodGet, "/v1/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"available"}`, rec.Body.String())
}

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	api := newTestAPI(t)

	api.token = ""
	rec := api.do(http.MethodGet, "/v1/plans", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.ErrMissingAuthorization.Error(), decodeError(t, rec))

	api.token = "not-a-jwt"
	rec = api.do(http.MethodGet, "/v1/plans", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := auth.NewIssuer("another-secret-of-16+", "jardin", time.Hour).Issue("ana", "")
	require.NoError(t, err)
	api.token = other
	rec = api.do(http.MethodGet, "/v1/plans", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalog_CRUD(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/plans", map[string]string{"name": "Irrigation"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decodeData[Plan](t, rec)
	assert.NotEmpty(t, plan.ID)

	rec = api.do(http.MethodPost, "/v1/tasks", map[string]string{"plan_id": plan.ID, "name": "Check sprinklers"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decodeData[Task](t, rec)
	assert.Equal(t, "custom", task.Kind)

	rec = api.do(http.MethodPut, "/v1/plans/"+plan.ID, map[string]string{"description": "Drip and sprinklers"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[Plan](t, rec)
	assert.Equal(t, "Irrigation", updated.Name)
	assert.Equal(t, "Drip and sprinklers", updated.Description)

	rec = api.do(http.MethodGet, "/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decodeData[[]CatalogPlan](t, rec)
	require.Len(t, catalog, 3)
	assert.Equal(t, "Garden beds", catalog[0].Name)
	assert.Equal(t, "Irrigation", catalog[1].Name)
	require.Len(t, catalog[1].Tasks, 1)
	assert.Equal(t, "Check sprinklers", catalog[1].Tasks[0].Name)

	rec = api.do(http.MethodGet, "/v1/tasks?plan_id="+api.fx.lawn.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]Task](t, rec), 3)

	rec = api.do(http.MethodDelete, "/v1/plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/v1/plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCitiesAndTeams(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/cities", map[string]string{"name": "Valparaíso", "region": "V"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = api.do(http.MethodGet, "/v1/cities", nil)
	assert.Len(t, decodeData[[]City](t, rec), 2)

	rec = api.do(http.MethodPost, "/v1/teams", map[string]string{"name": "South crew"})
	require.Equal(t, http.StatusCreated, rec.Code)
	team := decodeData[Team](t, rec)
	rec = api.do(http.MethodPut, "/v1/teams/"+team.ID, map[string]string{"leader": "Luis"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Luis", decodeData[Team](t, rec).Leader)

	rec = api.do(http.MethodPost, "/v1/teams", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestClients_CreateAndActivate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/clients", map[string]string{"name": "Los Robles", "contact_name": "Pedro"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeData[Client](t, rec)
	assert.Equal(t, "prospect", c.Status)
	assert.NotEmpty(t, c.OnboardingDate)

	rec = api.do(http.MethodPut, "/v1/clients/"+c.ID, map[string]string{"status": "active"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c = decodeData[Client](t, rec)
	assert.Equal(t, "active", c.Status)
	assert.NotEmpty(t, c.AcceptanceDate)

	rec = api.do(http.MethodGet, "/v1/clients?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]Client](t, rec), 1)

	rec = api.do(http.MethodGet, "/v1/clients?status=vip", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestComposeQuote(t *testing.T) {
	api := newTestAPI(t)

	d := api.composeQuote()

	assert.Equal(t, "pending", d.Quote.Status)
	assert.Len(t, d.Quote.Number, 8)
	assert.Equal(t, "Santiago", d.CityName)
	require.Len(t, d.Plans, 2)
	assert.Equal(t, "Lawn care", d.Plans[0].Name)
	assert.Len(t, d.Plans[0].Tasks, 3)

	garden := d.Plans[1]
	assert.Equal(t, "Front garden", garden.CustomName)
	require.Len(t, garden.Tasks, 2)
	assert.False(t, garden.Tasks[0].Included)
	assert.False(t, garden.Tasks[0].VisibleToCrew)
	assert.True(t, garden.Tasks[1].Included)
	assert.Equal(t, "beds by the gate only", garden.Tasks[1].Observation)
}

func TestComposeQuote_Errors(t *testing.T) {
	api := newTestAPI(t)

	t.Run("duplicate plan", func(t *testing.T) {
		body := map[string]any{
			"client_id": api.fx.client.ID,
			"plans":     []PlanRequest{{PlanID: api.fx.lawn.ID}, {PlanID: api.fx.lawn.ID}},
		}
		rec := api.do(http.MethodPost, "/v1/quotes/compose", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown plan", func(t *testing.T) {
		body := map[string]any{"client_id": api.fx.client.ID, "plans": []PlanRequest{{PlanID: "nope"}}}
		rec := api.do(http.MethodPost, "/v1/quotes/compose", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("task from another plan", func(t *testing.T) {
		body := map[string]any{
			"client_id": api.fx.client.ID,
			"plans": []PlanRequest{{
				PlanID: api.fx.lawn.ID,
				Tasks:  []TaskRequest{{TaskID: api.fx.weeding.ID}},
			}},
		}
		rec := api.do(http.MethodPost, "/v1/quotes/compose", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown client", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/v1/quotes", map[string]string{"client_id": "missing"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/v1/quotes", `{"client":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "invalid request body")
	})

	rec := api.do(http.MethodGet, "/v1/quotes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]Quote](t, rec))
}

func TestQuote_UpdateKeepsPlans(t *testing.T) {
	api := newTestAPI(t)
	d := api.composeQuote()

	rec := api.do(http.MethodPut, "/v1/quotes/"+d.Quote.ID, map[string]string{"considerations": "Gate code 1234."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[QuoteDetail](t, rec)
	assert.Equal(t, "Gate code 1234.", updated.Quote.Considerations)
	assert.Equal(t, "Monthly fee of 120000.", updated.Quote.EconomicProposal)
	assert.Len(t, updated.Plans, 2)
}

func TestQuote_RecomposeReplacesPlans(t *testing.T) {
	api := newTestAPI(t)
	d := api.composeQuote()

	body := map[string]any{"plans": []PlanRequest{{PlanID: api.fx.garden.ID}}}
	rec := api.do(http.MethodPut, "/v1/quotes/"+d.Quote.ID+"/compose", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[QuoteDetail](t, rec)
	require.Len(t, updated.Plans, 1)
	assert.Equal(t, api.fx.garden.ID, updated.Plans[0].PlanID)
	assert.Len(t, updated.Plans[0].Tasks, 2)
}

func TestQuote_StatusTransitions(t *testing.T) {
	api := newTestAPI(t)
	d := api.composeQuote()
	path := "/v1/quotes/" + d.Quote.ID + "/status"

	rec := api.do(http.MethodPut, path, map[string]string{"status": "sent"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	q := decodeData[Quote](t, rec)
	assert.Equal(t, "sent", q.Status)
	assert.NotEmpty(t, q.SendDate)

	rec = api.do(http.MethodPut, path, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPut, path, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPut, path, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuote_DocumentAndPDF(t *testing.T) {
	api := newTestAPI(t)
	d := api.composeQuote()

	rec := api.do(http.MethodGet, "/v1/quotes/"+d.Quote.ID+"/document", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := decodeData[Document](t, rec)
	assert.Equal(t, "SERVICE QUOTE #"+d.Quote.Number, doc.Title)
	assert.Equal(t, []string{"Edging", "Leaf blowing", "Mowing", "Weeding"}, doc.Included)
	assert.Equal(t, []string{"Pruning"}, doc.Excluded)
	assert.Contains(t, doc.Text, "Water access provided by client.")

	rec = api.do(http.MethodGet, "/v1/quotes/"+d.Quote.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestQuote_Delete(t *testing.T) {
	api := newTestAPI(t)
	d := api.composeQuote()

	rec := api.do(http.MethodDelete, "/v1/quotes/"+d.Quote.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(http.MethodGet, "/v1/quotes/"+d.Quote.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePlanInUse_Conflict(t *testing.T) {
	api := newTestAPI(t)
	api.composeQuote()

	rec := api.do(http.MethodDelete, "/v1/plans/"+api.fx.lawn.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func (a *testAPI) contractFromQuote(quoteID string) ContractDetail {
	a.t.Helper()
	hide := false
	body := FromQuoteRequest{
		TeamID:    a.fx.team.ID,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Frequency: "weekly",
		VisitDay:  "tuesday",
		Overrides: map[string]OverrideRequest{a.fx.blowing.ID: {VisibleToCrew: &hide}},
	}
	rec := a.do(http.MethodPost, "/v1/contracts/from-quote/"+quoteID, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[ContractDetail](a.t, rec)
}

func TestContract_FromQuote(t *testing.T) {
	api := newTestAPI(t)
	q := api.composeQuote()

	c := api.contractFromQuote(q.Quote.ID)

	assert.Equal(t, "active", c.Contract.Status)
	assert.Equal(t, q.Quote.ID, c.Contract.QuoteID)
	assert.Equal(t, "tuesday", c.Contract.VisitDay)
	assert.Equal(t, "North crew", c.TeamName)
	assert.Equal(t, "active", c.Client.Status)
	require.Len(t, c.Plans, 2)
	for _, task := range c.Plans[0].Tasks {
		assert.Equal(t, task.TaskID != api.fx.blowing.ID, task.VisibleToCrew, task.Name)
	}

	rec := api.do(http.MethodGet, "/v1/quotes/"+q.Quote.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "accepted", decodeData[QuoteDetail](t, rec).Quote.Status)

	rec = api.do(http.MethodGet, "/v1/contracts/"+c.Contract.ID+"/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decodeData[Document](t, rec)
	assert.True(t, strings.HasPrefix(doc.Title, "SERVICE CONTRACT #"))
	assert.Contains(t, doc.Text, "Monthly fee of 120000.")
}

func TestContract_ComposeAndUpdate(t *testing.T) {
	api := newTestAPI(t)

	body := map[string]any{
		"client_id":  api.fx.client.ID,
		"team_id":    api.fx.team.ID,
		"start_date": "2025-03-01",
		"end_date":   "2025-05-31",
		"frequency":  "monthly",
		"visit_day":  "monday",
		"plans":      []PlanRequest{{PlanID: api.fx.lawn.ID}},
	}
	rec := api.do(http.MethodPost, "/v1/contracts/compose", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeData[ContractDetail](t, rec)
	assert.Empty(t, c.Contract.QuoteID)
	assert.Equal(t, "monthly", c.Contract.Frequency)

	rec = api.do(http.MethodPut, "/v1/contracts/"+c.Contract.ID, map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[ContractDetail](t, rec)
	assert.Equal(t, "suspended", updated.Contract.Status)
	assert.Len(t, updated.Plans, 1)

	rec = api.do(http.MethodPut, "/v1/contracts/"+c.Contract.ID, map[string]string{"end_date": "2025-02-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodGet, "/v1/contracts?status=suspended", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]Contract](t, rec), 1)
}

func TestContract_CreateRequiresVisitDay(t *testing.T) {
	api := newTestAPI(t)

	body := map[string]string{
		"client_id":  api.fx.client.ID,
		"team_id":    api.fx.team.ID,
		"start_date": "2025-03-01",
		"end_date":   "2025-05-31",
		"frequency":  "weekly",
	}
	rec := api.do(http.MethodPost, "/v1/contracts", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec), "visit day")
}

func TestVisits_ScheduleSheetAndClose(t *testing.T) {
	api := newTestAPI(t)
	q := api.composeQuote()
	c := api.contractFromQuote(q.Quote.ID)
	schedulePath := "/v1/visits/schedule/" + c.Contract.ID

	rec := api.do(http.MethodPost, schedulePath, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decodeData[ScheduleResult](t, rec)
	assert.Equal(t, "4 visits scheduled", res.Message)
	require.Len(t, res.Created, 4)
	assert.Equal(t, "2025-03-04", res.Created[0].Date)

	rec = api.do(http.MethodPost, schedulePath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeData[ScheduleResult](t, rec)
	assert.Empty(t, res.Created)

	rec = api.do(http.MethodGet, "/v1/visits?contract_id="+c.Contract.ID+"&from=2025-03-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	visits := decodeData[[]Visit](t, rec)
	require.Len(t, visits, 3)

	visitID := visits[0].ID
	rec = api.do(http.MethodGet, "/v1/visits/"+visitID+"/sheet", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sheet := decodeData[Sheet](t, rec)
	assert.Equal(t, "Casa Verde", sheet.ClientName)
	// Leaf blowing was hidden on the contract, pruning on the quote.
	require.Len(t, sheet.Tasks, 3)

	rec = api.do(http.MethodPost, "/v1/visits/"+visitID+"/close", CloseVisitRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodPost, "/v1/visits/"+visitID+"/close", CloseVisitRequest{
		DoneTaskIDs: []string{sheet.Tasks[0].TaskSelectionID},
		Observation: "Dry soil",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	closed := decodeData[Visit](t, rec)
	assert.Equal(t, "completed", closed.Status)
	assert.Equal(t, "ana", closed.ClosedBy)

	rec = api.do(http.MethodGet, "/v1/visits/"+visitID+"/sheet", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sheet = decodeData[Sheet](t, rec)
	assert.True(t, sheet.Tasks[0].Done)
	assert.False(t, sheet.Tasks[1].Done)

	rec = api.do(http.MethodPut, "/v1/visits/"+visitID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVisits_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	q := api.composeQuote()
	c := api.contractFromQuote(q.Quote.ID)

	rec := api.do(http.MethodPost, "/v1/visits", map[string]string{"contract_id": c.Contract.ID, "date": "2025-03-08"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decodeData[Visit](t, rec)
	assert.Equal(t, "extra", v.Type)
	assert.Equal(t, api.fx.client.ID, v.ClientID)

	rec = api.do(http.MethodPut, "/v1/visits/"+v.ID+"/reschedule", map[string]string{"date": "2025-03-09"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v = decodeData[Visit](t, rec)
	assert.Equal(t, "rescheduled", v.Status)
	assert.Equal(t, "2025-03-09", v.Date)

	rec = api.do(http.MethodPut, "/v1/visits/"+v.ID+"/reschedule", map[string]string{"date": "09/03/2025"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodPut, "/v1/visits/"+v.ID+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", decodeData[Visit](t, rec).Status)

	rec = api.do(http.MethodGet, "/v1/visits/route?from=2025-03-03&team_id="+api.fx.team.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stops := decodeData[[]RouteStop](t, rec)
	require.Len(t, stops, 1)
	assert.Equal(t, "North crew", stops[0].TeamName)

	rec = api.do(http.MethodDelete, "/v1/visits/"+v.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/v1/visits/"+v.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrDuplicatePlan, http.StatusConflict},
		{domain.ErrValidation, http.StatusUnprocessableEntity},
		{domain.ErrNoTasksDone, http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
