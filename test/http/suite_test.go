package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
	"github.com/wojciech-zurek/the-secret-project/internal/csv"
	httpHandler "github.com/wojciech-zurek/the-secret-project/internal/http"
	"github.com/wojciech-zurek/the-secret-project/internal/metrics"
	"github.com/wojciech-zurek/the-secret-project/internal/runner"
)

// TestSuite wires the admin surface the way cmd/main.go does: a host feeding
// metrics and a snapshot cache, with the two admin handlers on top.
type TestSuite struct {
	Cache           *httpHandler.SnapshotCache
	AccountsHandler httpHandler.Handler
	MetricsHandler  http.Handler
	Tally           *runner.Tally

	host runner.Runner
}

func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	registry := prometheus.NewRegistry()
	cache := &httpHandler.SnapshotCache{}
	tally := &runner.Tally{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	host := runner.NewSequential(
		core.NewWrappedProcessor(),
		runner.WithObserver(metrics.New(registry)),
		runner.WithObserver(tally),
	)

	return &TestSuite{
		Cache:           cache,
		AccountsHandler: httpHandler.NewHandler(cache, logger),
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Tally:           tally,
		host:            host,
	}
}

// RunCSV processes a whole CSV input and publishes the resulting snapshots,
// mirroring the end-of-run sequence in cmd/main.go.
func (s *TestSuite) RunCSV(t *testing.T, input string) {
	t.Helper()

	require.NoError(t, s.host.Run(context.Background(), csv.NewReader(strings.NewReader(input))))
	s.Cache.Publish(s.host.Snapshots())
}
