package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withToken(token string) context.Context {
	return auth.WithSession(context.Background(), auth.Session{Token: token, User: "ana"})
}

func TestCatalog_SendsBearerAndDecodesData(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/catalog", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":"p1","name":"Lawn care","tasks":[{"id":"t1","plan_id":"p1","name":"Mowing","kind":"predefined"}]}]}`))
	}))
	defer srv.Close()

	plans, err := New(srv.URL, 0).Catalog(withToken("tok-1"))

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	require.Len(t, plans, 1)
	assert.Equal(t, "Lawn care", plans[0].Name)
	require.Len(t, plans[0].Tasks, 1)
	assert.Equal(t, "Mowing", plans[0].Tasks[0].Name)
}

func TestScheduleVisits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/visits/schedule/c1", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"message":"1 visits scheduled","data":{"message":"1 visits scheduled","created":[{"id":"v1","date":"2025-03-04","status":"scheduled"}]}}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL, 0).ScheduleVisits(withToken("tok"), "c1")

	require.NoError(t, err)
	assert.Equal(t, "1 visits scheduled", res.Message)
	require.Len(t, res.Created, 1)
	assert.Equal(t, "2025-03-04", res.Created[0].Date)
}

func TestCall_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Catalog(withToken("expired"))

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCall_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"validation failed: only active contracts can be scheduled"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).ScheduleVisits(withToken("tok"), "c1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "only active contracts")
}

func TestCall_RequiresSession(t *testing.T) {
	_, err := New("http://127.0.0.1:1", 0).Catalog(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCall_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 1).Catalog(withToken("tok"))

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"available"}`))
	}))
	defer srv.Close()

	assert.True(t, New(srv.URL, 0).Available(context.Background()))
}
