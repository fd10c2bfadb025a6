package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestUseCaseObserver_ReportsSaveQuote(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	rec := &recordingObserver{}
	svc := NewQuoteService(r.quotes, r.uow, "", rec)

	id, err := svc.SaveQuoteWithPlansAndTasks(context.Background(), &domain.Quote{ClientID: s.client.ID}, s.addedPlans())
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	e := rec.events[0]
	assert.Equal(t, "save-quote", e.Name)
	assert.True(t, e.Success)
	assert.Equal(t, id, e.Fields["quote_id"])
	assert.Equal(t, 2, e.Fields["plans"])

	_, err = svc.SaveQuoteWithPlansAndTasks(context.Background(), &domain.Quote{}, nil)
	require.Error(t, err)
	require.Len(t, rec.events, 2)
	assert.False(t, rec.events[1].Success)
	assert.True(t, errors.Is(rec.events[1].Err, domain.ErrValidation))
}

func TestZapUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := NewZapUseCaseObserver(zap.New(core))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "close-visit", Success: true, Fields: map[string]any{"done": 3}})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "close-visit", Err: domain.ErrNoTasksDone})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "service_use_case", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "close-visit", entries[0].ContextMap()["use_case"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["done"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "no tasks marked done", entries[1].ContextMap()["error"])
}

func TestNewZapUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
}
