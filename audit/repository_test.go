package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/subexpiry/audit"
)

type fakeElasticsearch struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	status   int
	search   string
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if strings.HasSuffix(r.URL.Path, "/_search") {
		_, _ = io.WriteString(w, f.search)
		return
	}
	_, _ = io.WriteString(w, `{"result":"created"}`)
}

func newRepository(t *testing.T, es *fakeElasticsearch) *audit.ElasticsearchRepository {
	t.Helper()
	srv := httptest.NewServer(es)
	t.Cleanup(srv.Close)
	repo, err := audit.NewElasticsearchRepository(srv.URL, "subscription-expirations")
	require.NoError(t, err)
	return repo
}

func TestElasticsearchRepository_LogExpiration(t *testing.T) {
	es := &fakeElasticsearch{}
	repo := newRepository(t, es)

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	err := repo.LogExpiration(context.Background(), audit.ExpirationLog{
		Timestamp: at,
		FBID:      "bob",
		Action:    audit.ActionSubscriptionExpired,
		Sentinel:  "E",
	})
	require.NoError(t, err)

	require.Len(t, es.requests, 1)
	assert.Equal(t, http.MethodPut, es.requests[0].Method)
	assert.True(t, strings.HasPrefix(es.requests[0].URL.Path, "/subscription-expirations/_doc/"))

	var doc audit.ExpirationLog
	require.NoError(t, json.Unmarshal([]byte(es.bodies[0]), &doc))
	assert.Equal(t, "bob", doc.FBID)
	assert.Equal(t, "E", doc.Sentinel)
}

func TestElasticsearchRepository_LogExpirationError(t *testing.T) {
	es := &fakeElasticsearch{status: http.StatusBadRequest}
	repo := newRepository(t, es)

	err := repo.LogExpiration(context.Background(), audit.ExpirationLog{FBID: "bob", Timestamp: time.Now()})
	assert.Error(t, err)
}

func TestElasticsearchRepository_QueryExpirations(t *testing.T) {
	es := &fakeElasticsearch{search: `{"hits":{"hits":[{"_source":{"fbid":"bob","action":"subscription.expired","sentinel":"E"}}]}}`}
	repo := newRepository(t, es)

	logs, err := repo.QueryExpirations(context.Background(), time.Now().Add(-time.Hour), time.Now(), "bob")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "bob", logs[0].FBID)
	assert.Contains(t, es.bodies[0], `"fbid":"bob"`)
}
