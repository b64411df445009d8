package reposearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestEncodeCriteria_OmitsEmptyValues(t *testing.T) {
	q := EncodeCriteria(Criteria{Keywords: "angular"})

	assert.Equal(t, "keywords=angular", q.Encode())
}

func TestEncodeCriteria_AllValues(t *testing.T) {
	q := EncodeCriteria(Criteria{Keywords: "web framework", Language: "Go", EarliestCreatedDate: "2020-01-01", MaxPages: 2})

	assert.Equal(t, "web framework", q.Get("keywords"))
	assert.Equal(t, "Go", q.Get("language"))
	assert.Equal(t, "2020-01-01", q.Get("earliestCreatedDate"))
	assert.Equal(t, "2", q.Get("maxPages"))
}

func TestSearch_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "angular", r.URL.Query().Get("keywords"))
		assert.Equal(t, "5", r.URL.Query().Get("maxPages"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"angular","url":"https://github.com/angular/angular","language":"TypeScript","created":"2014-09-18","stars":95000,"forks":25000,"recency":"12 years ago","popularityScore":10},
			{"name":"tiny-ng","url":"https://github.com/x/tiny-ng","stars":1,"forks":0,"recency":"Today","popularityScore":0}
		]`))
	})

	repos, err := client.Search(context.Background(), Criteria{Keywords: "angular", MaxPages: 5})

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "angular", repos[0].Name)
	assert.Equal(t, "2014-09-18", repos[0].Created)
	assert.Equal(t, 10.0, repos[0].PopularityScore)
	assert.Empty(t, repos[1].Language)
}

func TestSearch_NullBodyIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	repos, err := client.Search(context.Background(), Criteria{Keywords: "x"})

	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestSearch_ErrorWithMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid search request"}`))
	})

	_, err := client.Search(context.Background(), Criteria{Keywords: "x"})

	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid search request", apiErr.Message)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "Invalid search request", ErrorMessage(err))
}

func TestSearch_ErrorWithoutMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"plain text", "upstream exploded"},
		{"json without error", `{"detail":"nope"}`},
		{"non-string error", `{"error":{"code":1}}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Search(context.Background(), Criteria{Keywords: "x"})

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
			assert.Empty(t, apiErr.Message)
		})
	}
}

func TestSearch_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Too many requests. Please try again later."}`))
	})

	_, err := client.Search(context.Background(), Criteria{Keywords: "x"})

	assert.True(t, IsRateLimited(err))
}

func TestSearch_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(30*time.Millisecond))

	_, err := client.Search(context.Background(), Criteria{Keywords: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearch_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.Search(context.Background(), Criteria{Keywords: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding search response")
}

func TestNewClient_Options(t *testing.T) {
	_, err := NewClient(WithBaseURL("not a url"))
	assert.Error(t, err)

	_, err = NewClient(WithTimeout(-time.Second))
	assert.Error(t, err)

	_, err = NewClient(WithHTTPClient(nil))
	assert.Error(t, err)

	client, err := NewClient(WithBaseURL("http://proxy.local:9000/"))
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.local:9000/api/search?keywords=go", client.SearchURL(Criteria{Keywords: "go"}))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "search proxy returned 503", (&Error{StatusCode: 503}).Error())
	assert.Equal(t, "search proxy returned 400: bad", (&Error{StatusCode: 400, Message: "bad"}).Error())
}
