package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travelmate_command_runs_total",
		Help: "Total CLI command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travelmate_command_errors_total",
		Help: "Total CLI command errors",
	}, []string{"command"})
	RecommendRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travelmate_recommend_runs_total",
		Help: "Total recommendation requests by kind",
	}, []string{"kind"})
	RecommendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelmate_recommend_duration_seconds",
		Help:    "Recommendation request duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	RecommendResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelmate_recommend_results",
		Help:    "Result count per recommendation request",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"kind"})
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travelmate_cache_hits_total",
		Help: "Response cache hits by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(CommandRuns, CommandErrors, RecommendRuns, RecommendDuration, RecommendResults, CacheHits)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// IncCommandRun increments the run counter for a command.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError increments the error counter for a command.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

// ObserveRecommend records one recommendation request.
func ObserveRecommend(kind string, start time.Time, results int) {
	RecommendRuns.WithLabelValues(kind).Inc()
	RecommendDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	RecommendResults.WithLabelValues(kind).Observe(float64(results))
}
