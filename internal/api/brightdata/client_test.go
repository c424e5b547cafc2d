package brightdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", 5*time.Second, zap.NewNop())
}

func TestScrape_ParsesNDJSON(t *testing.T) {
	body := `{"url":"https://example.com/jobs/1","job_posting_id":"1","job_title":"Backend Engineer","company_name":"Acme","discovery_input":{"url":"q","request_id":"req-1"}}
[{"url":"https://example.com/jobs/2","job_posting_id":"2","job_title":"Data Engineer","company_name":"Globex","discovery_input":{"url":"q","request_id":"req-1"}}]
`
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req scrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 1)
		assert.Equal(t, "req-1", req.Input[0].RequestID)

		w.Write([]byte(body))
	})

	listings, err := client.Scrape(context.Background(), []QueryInput{{URL: "q", RequestID: "req-1"}})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Backend Engineer", listings[0].Title)
	assert.Equal(t, "req-1", listings[1].RequestID())
}

func TestScrape_DropsMalformedAndErrorRows(t *testing.T) {
	body := `not json at all
{"job_title":"","url":"https://example.com/jobs/3"}
{"url":"https://example.com/jobs/4","job_title":"Broken","error":"page timed out"}
{"url":"https://example.com/jobs/5","job_title":"Good One","company_name":"Initech","discovery_input":{"request_id":"req-2"}}
`
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	listings, err := client.Scrape(context.Background(), []QueryInput{{URL: "q", RequestID: "req-2"}})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Good One", listings[0].Title)
}

func TestScrape_UpstreamFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusPaymentRequired)
	})

	_, err := client.Scrape(context.Background(), []QueryInput{{URL: "q", RequestID: "req-3"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestScrape_MissingAPIKey(t *testing.T) {
	client := New("http://unused", "", time.Second, zap.NewNop())
	_, err := client.Scrape(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
