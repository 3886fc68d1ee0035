package igdb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamereviews-backend/lib/retryutil"

	"github.com/stretchr/testify/require"
)

var fastRetry = retryutil.Policy{MaxRetries: 2, InitialWait: time.Millisecond, StepWait: time.Millisecond}

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{
		BaseUrl:           url,
		ClientID:          "test-client",
		AccessToken:       "test-token",
		RequestsPerSecond: 1000,
		RateLimitCooldown: time.Millisecond,
		RateLimitRetries:  2,
		Retry:             fastRetry,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(ClientOptions{ClientID: "only-id"})
	require.Error(t, err)
	_, err = NewClient(ClientOptions{AccessToken: "only-token"})
	require.Error(t, err)
}

func TestGamesQueryRendering(t *testing.T) {
	q := gamesQuery{Where: "platforms = (6)", Offset: 500, Limit: 250}.String()
	require.Contains(t, q, "fields name,")
	require.Contains(t, q, "where platforms = (6);\n")
	require.Contains(t, q, "offset 500;\n")
	require.Contains(t, q, "limit 250;\n")
	require.Contains(t, q, "sort id asc;\n")

	// no filter, no where clause
	q = gamesQuery{Offset: 0, Limit: 10}.String()
	require.NotContains(t, q, "where")
}

func TestGamesFetchesPage(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		require.Equal(t, "test-client", r.Header.Get("Client-ID"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`[
			{"id": 1942, "name": "The Witcher 3: Wild Hunt", "total_rating": 93.6},
			{"id": 7346, "name": "Breath of the Wild"}
		]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	page, err := client.Games(context.Background(), "platforms = (6)", 1000, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.EqualValues(t, 1942, page[0].ID)
	require.Equal(t, "The Witcher 3: Wild Hunt", page[0].Name)
	require.InDelta(t, 93.6, page[0].TotalRating, 0.001)

	require.Contains(t, gotBody, "where platforms = (6);")
	require.Contains(t, gotBody, "offset 1000;")
	require.Contains(t, gotBody, "limit 2;")
}

func TestGamesEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	page, err := testClient(t, server.URL).Games(context.Background(), "", 99999, 500)
	require.NoError(t, err)
	require.Empty(t, page)
}

func TestGamesResendsSamePageAfterRateLimit(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[{"id": 1, "name": "One"}]`))
	}))
	defer server.Close()

	page, err := testClient(t, server.URL).Games(context.Background(), "", 500, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)

	// the cooled-down retry targets the identical page
	require.Len(t, bodies, 2)
	require.Equal(t, bodies[0], bodies[1])
}

func TestGamesRateLimitBudgetExhausted(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Games(context.Background(), "", 0, 1)
	require.ErrorIs(t, err, ErrRateLimited)
	// initial request plus RateLimitRetries resends, no more
	require.Equal(t, 3, hits)
}

func TestGamesRetriesServerErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id": 1, "name": "One"}]`))
	}))
	defer server.Close()

	page, err := testClient(t, server.URL).Games(context.Background(), "", 0, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, 2, hits)
}

func TestGamesDoesNotRetryClientErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Games(context.Background(), "", 0, 1)
	require.Error(t, err)
	require.Equal(t, 1, hits)
}

func TestGamesSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl:           server.URL,
		ClientID:          "test-client",
		AccessToken:       "test-token",
		RequestsPerSecond: 50,
		Retry:             fastRetry,
	})
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Games(context.Background(), "", 0, 1)
		require.NoError(t, err)
	}
	// three requests at 50/s cannot finish faster than two intervals
	require.GreaterOrEqual(t, time.Since(start), 2*time.Second/50)
}
