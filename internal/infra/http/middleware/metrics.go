package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_scored_total",
			Help: "Total number of lead qualification attempts",
		},
		[]string{"qualified"},
	)

	downloadsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_downloads_total",
			Help: "Total number of gated document downloads",
		},
		[]string{"document_type"},
	)

	followupEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_emails_total",
			Help: "Total number of follow-up email send outcomes",
		},
		[]string{"outcome"},
	)

	emailEventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_events_ingested_total",
			Help: "Total number of delivery webhook events processed",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadScored(qualified bool) {
	leadsScored.WithLabelValues(strconv.FormatBool(qualified)).Inc()
}

func RecordDownload(documentType string) {
	downloadsRecorded.WithLabelValues(documentType).Inc()
}

func RecordFollowupOutcomes(sent, retried, failed int) {
	followupEmailsSent.WithLabelValues("sent").Add(float64(sent))
	followupEmailsSent.WithLabelValues("retried").Add(float64(retried))
	followupEmailsSent.WithLabelValues("failed").Add(float64(failed))
}

func RecordEmailEvents(processed, failed int) {
	emailEventsIngested.WithLabelValues("processed").Add(float64(processed))
	emailEventsIngested.WithLabelValues("failed").Add(float64(failed))
}
