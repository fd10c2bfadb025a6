package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/alexanderramin/jardin/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selectionFixture struct {
	quoteA, quoteB *domain.Quote
	lawn, garden   *domain.Plan
	edging, blow   *domain.Task
	pruning        *domain.Task
}

func seedSelections(t *testing.T, ctx context.Context, repo *SQLiteSelectionRepo, f selectionFixture) {
	t.Helper()
	add := func(originID string, plan *domain.Plan, name string, tasks ...domain.TaskSelection) {
		ps := &domain.PlanSelection{
			ID:             uuid.New().String(),
			OriginType:     domain.OriginQuote,
			OriginID:       originID,
			PlanID:         plan.ID,
			CustomName:     name,
			ReferencePrice: decimal.RequireFromString("45000.50"),
		}
		require.NoError(t, repo.CreatePlanSelection(ctx, ps))
		for _, ts := range tasks {
			ts.ID = uuid.New().String()
			ts.PlanSelectionID = ps.ID
			require.NoError(t, repo.CreateTaskSelection(ctx, &ts))
		}
	}
	add(f.quoteA.ID, f.lawn, "",
		domain.TaskSelection{TaskID: f.edging.ID, Included: true, VisibleToCrew: true},
		domain.TaskSelection{TaskID: f.blow.ID, Included: true, VisibleToCrew: false, Observation: "only in autumn"})
	add(f.quoteA.ID, f.garden, "Front garden",
		domain.TaskSelection{TaskID: f.pruning.ID, Included: false, VisibleToCrew: true})
	add(f.quoteB.ID, f.lawn, "",
		domain.TaskSelection{TaskID: f.edging.ID, Included: true, VisibleToCrew: true})
}

func newSelectionFixture(t *testing.T, ctx context.Context, repo *SQLiteSelectionRepo) selectionFixture {
	t.Helper()
	db := repo.db
	clients := NewSQLiteClientRepo(db)
	quotes := NewSQLiteQuoteRepo(db)
	plans := NewSQLitePlanRepo(db)
	tasks := NewSQLiteTaskRepo(db)

	client := testutil.NewTestClient("Casa Verde")
	require.NoError(t, clients.Create(ctx, client))

	f := selectionFixture{
		quoteA: testutil.NewTestQuote(client.ID),
		quoteB: testutil.NewTestQuote(client.ID),
		lawn:   testutil.NewTestPlan("Basic Lawn Care"),
		garden: testutil.NewTestPlan("Garden Maintenance"),
	}
	require.NoError(t, quotes.Create(ctx, f.quoteA))
	require.NoError(t, quotes.Create(ctx, f.quoteB))
	require.NoError(t, plans.Create(ctx, f.lawn))
	require.NoError(t, plans.Create(ctx, f.garden))

	f.edging = testutil.NewTestTask(f.lawn.ID, "Edging")
	f.blow = testutil.NewTestTask(f.lawn.ID, "Path Blowing")
	f.pruning = testutil.NewTestTask(f.garden.ID, "Shrub Pruning")
	for _, task := range []*domain.Task{f.edging, f.blow, f.pruning} {
		require.NoError(t, tasks.Create(ctx, task))
	}
	return f
}

func TestSelectionRepo_ListByOrigin(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSelectionRepo(db)
	f := newSelectionFixture(t, ctx, repo)
	seedSelections(t, ctx, repo, f)

	sels, err := repo.ListByOrigin(ctx, domain.OriginQuote, f.quoteA.ID)
	require.NoError(t, err)
	require.Len(t, sels, 2)

	assert.Equal(t, f.lawn.ID, sels[0].Selection.PlanID)
	assert.True(t, decimal.RequireFromString("45000.5").Equal(sels[0].Selection.ReferencePrice))
	require.Len(t, sels[0].Tasks, 2)
	assert.Equal(t, f.edging.ID, sels[0].Tasks[0].TaskID)
	assert.False(t, sels[0].Tasks[1].VisibleToCrew)
	assert.Equal(t, "only in autumn", sels[0].Tasks[1].Observation)

	assert.Equal(t, "Front garden", sels[1].Selection.CustomName)
	require.Len(t, sels[1].Tasks, 1)
	assert.False(t, sels[1].Tasks[0].Included)
}

func TestSelectionRepo_ListVisibleTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSelectionRepo(db)
	f := newSelectionFixture(t, ctx, repo)
	seedSelections(t, ctx, repo, f)

	visible, err := repo.ListVisibleTasks(ctx, domain.OriginQuote, f.quoteA.ID)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Edging", visible[0].TaskName)
	assert.Equal(t, "Basic Lawn Care", visible[0].PlanName)
	assert.Equal(t, "Shrub Pruning", visible[1].TaskName)
	assert.Equal(t, "Front garden", visible[1].PlanName)
}

func TestSelectionRepo_DeleteByOriginLeavesOtherDocuments(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSelectionRepo(db)
	f := newSelectionFixture(t, ctx, repo)
	seedSelections(t, ctx, repo, f)

	n, err := repo.DeleteByOrigin(ctx, domain.OriginQuote, f.quoteA.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sels, err := repo.ListByOrigin(ctx, domain.OriginQuote, f.quoteA.ID)
	require.NoError(t, err)
	assert.Empty(t, sels)

	var orphanTasks int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM task_selections ts
		LEFT JOIN plan_selections ps ON ps.id = ts.plan_selection_id WHERE ps.id IS NULL`).Scan(&orphanTasks))
	assert.Zero(t, orphanTasks)

	other, err := repo.ListByOrigin(ctx, domain.OriginQuote, f.quoteB.ID)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Len(t, other[0].Tasks, 1)
}

func TestSelectionRepo_DuplicatePlanRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSelectionRepo(db)
	f := newSelectionFixture(t, ctx, repo)

	ps := func() *domain.PlanSelection {
		return &domain.PlanSelection{
			ID: uuid.New().String(), OriginType: domain.OriginQuote,
			OriginID: f.quoteA.ID, PlanID: f.lawn.ID,
		}
	}
	require.NoError(t, repo.CreatePlanSelection(ctx, ps()))
	assert.Error(t, repo.CreatePlanSelection(ctx, ps()))
}
