package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/jardin/internal/document"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveQuote_PersistsEverySelection(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	plans := s.addedPlans()
	plans[0].ReferencePrice = decimal.NewFromInt(45000)
	plans[0].Tasks[0].Observation = "  gate code 1234  "

	draft := &domain.Quote{ClientID: s.client.ID, Considerations: "Access through the side gate."}
	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, draft, plans)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	q, err := r.quotes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotePending, q.Status)
	assert.Equal(t, "Access through the side gate.", q.Considerations)

	sels, err := r.selections.ListByOrigin(ctx, domain.OriginQuote, id)
	require.NoError(t, err)
	require.Len(t, sels, 2)

	lawn := sels[0]
	assert.Equal(t, s.lawn.ID, lawn.Selection.PlanID)
	assert.Equal(t, "Lawn care", lawn.Selection.CustomName, "custom name defaults to the plan name")
	assert.True(t, lawn.Selection.ReferencePrice.Equal(decimal.NewFromInt(45000)))
	require.Len(t, lawn.Tasks, 3)
	for _, ts := range lawn.Tasks {
		assert.True(t, ts.Included)
		assert.True(t, ts.VisibleToCrew)
	}
	assert.Equal(t, "  gate code 1234  ", lawn.Tasks[0].Observation, "observation is stored as staged")
	assert.Empty(t, lawn.Tasks[1].Observation)

	var nulls int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM task_selections WHERE observation IS NULL`).Scan(&nulls))
	assert.Zero(t, nulls, "empty observations are stored as empty text")

	garden := sels[1]
	assert.Equal(t, "Front garden", garden.Selection.CustomName)
	assert.True(t, garden.Selection.ReferencePrice.IsZero())
	require.Len(t, garden.Tasks, 2)
	assert.Equal(t, s.pruning.ID, garden.Tasks[0].TaskID)
	assert.False(t, garden.Tasks[0].Included)
	assert.False(t, garden.Tasks[0].VisibleToCrew)
	assert.Equal(t, "beds by the gate only", garden.Tasks[1].Observation)
}

func TestSaveQuote_UnknownClient(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)

	_, err := svc.SaveQuoteWithPlansAndTasks(context.Background(), &domain.Quote{ClientID: "nobody"}, s.addedPlans())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSaveQuote_RollbackOnPlanSelectionFailure(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	ctx := context.Background()

	// Exec #1 = quote, #2 = lawn selection, #3-5 = lawn tasks, #6 = garden selection.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 6, Err: errors.New("injected selection failure")}
	svc := r.quoteService(failUoW)

	draft := &domain.Quote{ClientID: s.client.ID}
	_, err := svc.SaveQuoteWithPlansAndTasks(ctx, draft, s.addedPlans())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `creating plan selection "Front garden"`)
	assert.Contains(t, err.Error(), "injected selection failure")

	quotes, err := r.quotes.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, quotes, "quote must not survive without its selections")
	all, err := r.selections.ListPlanSelections(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaveQuote_RollbackOnTaskSelectionFailure(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	ctx := context.Background()

	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 4, Err: errors.New("injected task failure")}
	svc := r.quoteService(failUoW)

	_, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `creating task selection "Edging" in plan "Lawn care"`)

	quotes, err := r.quotes.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestSaveQuote_DuplicatePlanRejected(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	ctx := context.Background()
	svc := r.quoteService(r.uow)

	lawn := testutil.AddedPlanFrom(s.lawn, s.mowing)
	_, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, []domain.AddedPlan{lawn, lawn})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicatePlan))

	quotes, err := r.quotes.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestUpdateQuote_ReplacesSelections(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)

	other := testutil.NewTestQuote(s.client.ID)
	_, err = svc.SaveQuoteWithPlansAndTasks(ctx, other, []domain.AddedPlan{testutil.AddedPlanFrom(s.lawn, s.mowing)})
	require.NoError(t, err)

	proposal := "Monthly fee 120.000 CLP"
	onlyGarden := []domain.AddedPlan{testutil.AddedPlanFrom(s.garden, s.weeding)}
	require.NoError(t, svc.UpdateQuoteWithPlansAndTasks(ctx, id, domain.QuotePatch{EconomicProposal: &proposal}, onlyGarden))

	q, err := r.quotes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, proposal, q.EconomicProposal)

	sels, err := r.selections.ListByOrigin(ctx, domain.OriginQuote, id)
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, s.garden.ID, sels[0].Selection.PlanID)
	require.Len(t, sels[0].Tasks, 1)
	assert.Equal(t, s.weeding.ID, sels[0].Tasks[0].TaskID)

	untouched, err := r.selections.ListByOrigin(ctx, domain.OriginQuote, other.ID)
	require.NoError(t, err)
	assert.Len(t, untouched, 1, "other quotes keep their selections")
}

func TestUpdateQuote_RollbackKeepsOldSelections(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	ctx := context.Background()

	id, err := r.quoteService(r.uow).SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)

	// Exec #1 = quote update, #2 = delete task selections, #3 = delete plan
	// selections, #4 = new plan selection.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 4, Err: errors.New("injected rebuild failure")}
	err = r.quoteService(failUoW).UpdateQuoteWithPlansAndTasks(ctx, id, domain.QuotePatch{},
		[]domain.AddedPlan{testutil.AddedPlanFrom(s.garden, s.weeding)})
	require.Error(t, err)

	sels, err := r.selections.ListByOrigin(ctx, domain.OriginQuote, id)
	require.NoError(t, err)
	assert.Len(t, sels, 2, "old selections survive a failed rebuild")
}

func TestQuoteTransitionStatus(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)

	q, err := svc.TransitionStatus(ctx, id, domain.QuoteSent)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSent, q.Status)
	require.NotNil(t, q.SendDate)

	q, err = svc.TransitionStatus(ctx, id, domain.QuoteAccepted)
	require.NoError(t, err)
	require.NotNil(t, q.AcceptanceDate)

	_, err = svc.TransitionStatus(ctx, id, domain.QuotePending)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	stored, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteAccepted, stored.Status)
}

func TestQuoteDocument(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	draft := &domain.Quote{ClientID: s.client.ID, EconomicProposal: "Monthly fee 95.000 CLP"}
	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, draft, s.addedPlans())
	require.NoError(t, err)

	doc, err := svc.Document(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Title, "SERVICE QUOTE #"))

	var included, excluded []string
	for _, l := range doc.Included {
		included = append(included, l.Name)
	}
	for _, l := range doc.Excluded {
		excluded = append(excluded, l.Name)
	}
	assert.Equal(t, []string{"Mowing", "Edging", "Leaf blowing", "Weeding"}, included)
	assert.Equal(t, []string{"Pruning"}, excluded)

	text := document.RenderText(*doc)
	assert.Contains(t, text, "Jardines del Valle")
	assert.Contains(t, text, "Casa Verde")
	assert.Contains(t, text, "Santiago")
	assert.Contains(t, text, "Front garden")
	assert.Contains(t, text, "Monthly fee 95.000 CLP")

	pdf, err := svc.PDF(ctx, id)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestQuoteGetDetail_RebuildsAddedPlans(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)

	d, err := svc.GetDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Casa Verde", d.Client.Name)
	assert.Equal(t, "Santiago", d.CityName)
	require.Len(t, d.Plans, 2)
	assert.Equal(t, "Lawn care", d.Plans[0].DisplayName())
	assert.Empty(t, d.Plans[0].CustomName)
	assert.Equal(t, "Front garden", d.Plans[1].DisplayName())
	assert.Equal(t, "Pruning", d.Plans[1].Tasks[0].Name)
	assert.False(t, d.Plans[1].Tasks[0].Included)
}

func TestQuoteDelete_RemovesSelections(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := r.quoteService(r.uow)
	ctx := context.Background()

	id, err := svc.SaveQuoteWithPlansAndTasks(ctx, &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.GetByID(ctx, id)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	all, err := r.selections.ListPlanSelections(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
