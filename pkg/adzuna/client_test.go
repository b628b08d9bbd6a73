package adzuna

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newFakeAdzuna(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		AppID:   "test-id",
		AppKey:  "test-key",
		Country: "in",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestSearchSendsBuiltQuery(t *testing.T) {
	var got SearchParams
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "test-id", r.URL.Query().Get("app_id"))
		require.Equal(t, "test-key", r.URL.Query().Get("app_key"))

		var err error
		got, err = ParseSearchQuery(r.URL)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleSearchBody))
	})

	page, err := client.Search(context.Background(), SearchParams{
		What:           "golang developer",
		Where:          "Bengaluru",
		Page:           2,
		ResultsPerPage: 75,
	})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 2)

	require.Equal(t, "golang developer", got.What)
	require.Equal(t, "Bengaluru", got.Where)
	require.Equal(t, "in", got.Country)
	require.Equal(t, 2, got.Page)
	require.Equal(t, MaxResultsPerPage, got.ResultsPerPage)
}

func TestSearchReturnsAPIErrorOnServerFailure(t *testing.T) {
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"exception":"INTERNAL","display":"something broke"}`))
	})

	_, err := client.Search(context.Background(), SearchParams{What: "go"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "INTERNAL: something broke", apiErr.Message)
}

func TestSearchReturnsAPIErrorWithPlainBody(t *testing.T) {
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorised", http.StatusUnauthorized)
	})

	_, err := client.Search(context.Background(), SearchParams{What: "go"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "unauthorised", apiErr.Message)
}

func TestSearchRejectsMalformedBody(t *testing.T) {
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 10}`))
	})

	_, err := client.Search(context.Background(), SearchParams{What: "go"})
	require.ErrorIs(t, err, ErrDecode)
}

func TestSearchTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := NewClient(Config{
		AppID:   "test-id",
		AppKey:  "secret-key",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchParams{What: "go"})
	require.ErrorIs(t, err, ErrTimeout)
	require.NotContains(t, err.Error(), "secret-key")
}

func TestSearchKeepsCancellationInChain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		cancel()
		<-r.Context().Done()
	})

	_, err := client.Search(ctx, SearchParams{What: "go"})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrTimeout)
	require.NotErrorIs(t, err, ErrUnreachable)
	require.NotContains(t, err.Error(), "test-key")
}

func TestSearchReportsUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "k", BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchParams{What: "go"})
	require.ErrorIs(t, err, ErrUnreachable)

	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)

	msg := err.Error()
	require.Contains(t, msg, "app_key=REDACTED")
	require.Contains(t, msg, "app_id=id")
	require.NotContains(t, msg, "app_key=k&")
	require.NotContains(t, msg, "app_REDACTED")
}

func TestCategories(t *testing.T) {
	client := newFakeAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/api/jobs/gb/categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[{"tag":"it-jobs","label":"IT Jobs"}]}`))
	})

	categories, err := client.Categories(context.Background(), "gb")
	require.NoError(t, err)
	require.Equal(t, []Category{{Tag: "it-jobs", Label: "IT Jobs"}}, categories)
}
