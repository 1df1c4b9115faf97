// Package metrics tracks service counters and exposes them in
// Prometheus exposition format.
//
// Counters are plain atomics owned by the Metrics struct; Prometheus
// sees them through GaugeFunc views on a private registry, so the hot
// paths never touch collector locks.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP layer
	RequestsTotal  atomic.Uint64
	RequestErrors  atomic.Uint64
	ActiveRequests atomic.Int64

	// Floor plan analysis
	Analyses        atomic.Uint64
	AnalyzeFailures atomic.Uint64
	RoomsDetected   atomic.Uint64
	ButtonsDerived  atomic.Uint64
	OverlayMisses   atomic.Uint64
	LabelFallbacks  atomic.Uint64

	// Furniture and shopping
	FurnitureItems  atomic.Uint64
	ProductSearches atomic.Uint64

	// Upstream failures by service
	VisionErrors atomic.Uint64
	RasterErrors atomic.Uint64
	SearchErrors atomic.Uint64

	// Latency tracking
	AnalyzeLatencyMs atomic.Uint64 // last completed analysis, in ms

	registry *prometheus.Registry
}

// New creates a Metrics instance with its Prometheus collectors
// registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.registerCollectors()
	return m
}

func (m *Metrics) registerCollectors() {
	gauge := func(name, help string, value func() float64) {
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: name, Help: help},
			value,
		))
	}

	gauge("floorplan_requests_total", "Total HTTP requests handled",
		func() float64 { return float64(m.RequestsTotal.Load()) })
	gauge("floorplan_request_errors_total", "Total HTTP requests answered with an error status",
		func() float64 { return float64(m.RequestErrors.Load()) })
	gauge("floorplan_active_requests", "HTTP requests currently in flight",
		func() float64 { return float64(m.ActiveRequests.Load()) })

	gauge("floorplan_analyses_total", "Total completed floor plan analyses",
		func() float64 { return float64(m.Analyses.Load()) })
	gauge("floorplan_analyze_failures_total", "Total failed floor plan analyses",
		func() float64 { return float64(m.AnalyzeFailures.Load()) })
	gauge("floorplan_rooms_detected_total", "Total rooms extracted across all analyses",
		func() float64 { return float64(m.RoomsDetected.Load()) })
	gauge("floorplan_buttons_derived_total", "Total room buttons derived across all analyses",
		func() float64 { return float64(m.ButtonsDerived.Load()) })
	gauge("floorplan_overlay_misses_total", "Analyses that proceeded without a vector overlay",
		func() float64 { return float64(m.OverlayMisses.Load()) })
	gauge("floorplan_label_fallbacks_total", "Analyses that fell back past vision label detection",
		func() float64 { return float64(m.LabelFallbacks.Load()) })

	gauge("floorplan_furniture_items_total", "Total verified furniture items identified",
		func() float64 { return float64(m.FurnitureItems.Load()) })
	gauge("floorplan_product_searches_total", "Total product search calls issued",
		func() float64 { return float64(m.ProductSearches.Load()) })

	gauge("floorplan_vision_errors_total", "Total vision upstream failures",
		func() float64 { return float64(m.VisionErrors.Load()) })
	gauge("floorplan_raster_errors_total", "Total raster upstream failures",
		func() float64 { return float64(m.RasterErrors.Load()) })
	gauge("floorplan_search_errors_total", "Total product search upstream failures",
		func() float64 { return float64(m.SearchErrors.Load()) })

	gauge("floorplan_analyze_latency_ms", "Duration of the last completed analysis in milliseconds",
		func() float64 { return float64(m.AnalyzeLatencyMs.Load()) })
}

// ObserveAnalyze records a completed analysis that started at the
// given time.
func (m *Metrics) ObserveAnalyze(start time.Time, rooms, buttons int) {
	m.Analyses.Add(1)
	m.RoomsDetected.Add(uint64(rooms))
	m.ButtonsDerived.Add(uint64(buttons))
	m.AnalyzeLatencyMs.Store(uint64(time.Since(start).Milliseconds()))
}

// Handler returns the Prometheus scrape handler for this instance.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
