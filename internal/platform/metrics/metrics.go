// Package metrics holds the Prometheus collectors of the viewer.
//
// Metrics:
//   - folio_page_loads_total{outcome} (Counter): page materializations by outcome (loaded, failed)
//   - folio_page_load_duration_seconds (Histogram): loader latency per page
//   - folio_page_load_coalesced_total (Counter): EnsureLoaded calls that joined an in-flight load
//   - folio_transitions_total{direction} (Counter): completed page transitions
//   - folio_navigation_dropped_total{reason} (Counter): navigation requests ignored (boundary, transitioning)
//   - folio_current_page (Gauge): page index currently shown
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PageLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_page_loads_total",
		Help: "Page materializations by outcome.",
	}, []string{"outcome"})

	PageLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_page_load_duration_seconds",
		Help:    "Loader latency per page.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	PageLoadCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_page_load_coalesced_total",
		Help: "EnsureLoaded calls that joined an in-flight load.",
	})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_transitions_total",
		Help: "Completed page transitions by direction.",
	}, []string{"direction"})

	NavigationDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_navigation_dropped_total",
		Help: "Navigation requests ignored, by reason.",
	}, []string{"reason"})

	CurrentPage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_current_page",
		Help: "Page index currently shown.",
	})
)

// Serve exposes the default registry on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
