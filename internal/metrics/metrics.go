package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/projecthub/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth

	AuthAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projecthub",
		Name:      "auth_attempts_total",
		Help:      "Authentication flow outcomes, by flow and outcome.",
	}, []string{"flow", "outcome"})

	OTPIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "projecthub",
		Name:      "otp_issued_total",
		Help:      "One-time passcodes generated.",
	})

	// Email

	EmailsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projecthub",
		Name:      "emails_sent_total",
		Help:      "Outbound emails, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// Reminders

	ReminderRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "projecthub",
		Name:      "reminder_run_duration_seconds",
		Help:      "Time taken for one reminder scan.",
		Buckets:   prometheus.DefBuckets,
	})

	RemindersSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projecthub",
		Name:      "reminders_total",
		Help:      "Due-task reminders, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "projecthub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projecthub",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		AuthAttemptsTotal,
		OTPIssuedTotal,
		EmailsSentTotal,
		ReminderRunDuration,
		RemindersSentTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus liveness and readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, res health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if res.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(res)
}
