package caspio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaspio is a stand-in for the hosted provider: a token endpoint plus a
// records endpoint, with counters so tests can observe caching behavior.
type fakeCaspio struct {
	tokenCalls  int
	queryCalls  int
	expiresIn   int
	tokenStatus int
	queryStatus int
	result      []Record
	lastAuth    string
	lastQuery   string
}

func newFakeCaspio() *fakeCaspio {
	return &fakeCaspio{expiresIn: 3600, tokenStatus: http.StatusOK, queryStatus: http.StatusOK}
}

func (f *fakeCaspio) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls++
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":%d}`, f.tokenCalls, f.expiresIn)
	})
	mux.HandleFunc("/rest/v2/tables/", func(w http.ResponseWriter, r *http.Request) {
		f.queryCalls++
		f.lastAuth = r.Header.Get("Authorization")
		f.lastQuery = r.URL.Query().Get("q.where")
		if f.queryStatus != http.StatusOK {
			w.WriteHeader(f.queryStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{}
		if f.result != nil {
			payload["Result"] = f.result
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	return mux
}

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     "client-id",
		clientSecret: "client-secret",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestQueryReturnsRecords(t *testing.T) {
	fake := newFakeCaspio()
	fake.result = []Record{{"vac_id": float64(101), "first_name": "Pat"}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	records, err := client.Query(context.Background(), "tbl_customers", EqualNumber("vac_id", 101), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pat", records[0].Str("first_name"))
	assert.Equal(t, "Bearer tok-1", fake.lastAuth)
	assert.Equal(t, "vac_id=101", fake.lastQuery)
}

func TestTokenIsCachedAcrossQueries(t *testing.T) {
	fake := newFakeCaspio()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()
	_, err := client.Query(ctx, "tbl_customers", nil, 0)
	require.NoError(t, err)
	_, err = client.Query(ctx, "tbl_customers", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.tokenCalls, "second query should reuse the cached token")
	assert.Equal(t, 2, fake.queryCalls)
}

func TestTokenRefreshesInsideSafetyMargin(t *testing.T) {
	fake := newFakeCaspio()
	// A 30s TTL lands inside the 60s safety margin, so the cached expiry is
	// already in the past and every query re-exchanges.
	fake.expiresIn = 30
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()
	_, err := client.Query(ctx, "tbl_customers", nil, 0)
	require.NoError(t, err)
	_, err = client.Query(ctx, "tbl_customers", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, fake.tokenCalls)
}

func TestAuthErrorOnTokenFailure(t *testing.T) {
	fake := newFakeCaspio()
	fake.tokenStatus = http.StatusUnauthorized
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Query(context.Background(), "tbl_customers", nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestQueryErrorOnNonSuccessStatus(t *testing.T) {
	fake := newFakeCaspio()
	fake.queryStatus = http.StatusInternalServerError
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Query(context.Background(), "tbl_customers", nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuery)
}

func TestQueryAbsentResultDecodesEmpty(t *testing.T) {
	fake := newFakeCaspio()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	records, err := client.Query(context.Background(), "tbl_customers", nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
