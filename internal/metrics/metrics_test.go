package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

func TestRecorderLifecycle(t *testing.T) {
	m := NewMetrics()
	sol := generator.Solana.String()

	m.SearchStarted(generator.Solana, 4)
	m.SearchStarted(generator.Solana, 2)
	assert.Equal(t, 6.0, testutil.ToFloat64(m.WorkersActive.WithLabelValues(sol)))

	m.ObserveStats(generator.Solana, generator.Stats{Attempts: 500, HashRate: 250})
	assert.Equal(t, 500.0, testutil.ToFloat64(m.LiveAttempts.WithLabelValues(sol)))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.HashRate.WithLabelValues(sol)))

	m.SearchFinished(generator.Solana, "found", 4, 1000, 2*time.Second)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.WorkersActive.WithLabelValues(sol)))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.AttemptsTotal.WithLabelValues(sol)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(sol, "found")))
	assert.Zero(t, testutil.ToFloat64(m.LiveAttempts.WithLabelValues(sol)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDuration))
}

func TestServerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SearchFinished(generator.Tron, "cancelled", 1, 42, time.Second)

	srv := NewServer("127.0.0.1:0", "/metrics", m, zerolog.Nop())
	ts := httptest.NewServer(srv.http.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pumpvanity_search_attempts_total{network="Tron"} 42`)
	assert.Contains(t, string(body), "go_goroutines")

	resp2, err := http.Post(ts.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}
