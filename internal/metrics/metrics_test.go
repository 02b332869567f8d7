package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/taxonomy-loader/internal/app/batch"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

func TestCollector_ObserveBatch(t *testing.T) {
	t.Parallel()

	c := New(Config{})
	c.ObserveBatch("Skill", batch.Outcome{Size: 10}, 20*time.Millisecond)
	c.ObserveBatch("Skill", batch.Outcome{Size: 10}, 20*time.Millisecond)
	c.ObserveBatch("Skill", batch.Outcome{Size: 3, Err: errors.New("boom")}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.batches.WithLabelValues("Skill", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batches.WithLabelValues("Skill", "dropped")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.batchDuration))
}

func TestCollector_ObserveStage(t *testing.T) {
	t.Parallel()

	c := New(Config{})
	c.ObserveStage("Skills.csv", domain.RowsProcessedStats{RowsProcessed: 10, RowsSuccess: 8, RowsFailed: 2}, time.Second)

	assert.Equal(t, 8.0, testutil.ToFloat64(c.rows.WithLabelValues("Skills.csv", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rows.WithLabelValues("Skills.csv", "failed")))
}

func TestCollector_PushDisabled(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New(Config{}).Push(context.Background()))
}

func TestCollector_Push(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{PushURL: srv.URL, Job: "taxonomy_import"})
	c.ObserveStage("Skills.csv", domain.RowsProcessedStats{RowsProcessed: 1, RowsSuccess: 1}, time.Second)

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, "/metrics/job/taxonomy_import", <-paths)
}
