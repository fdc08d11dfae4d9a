package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "meditour", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meditour", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ReservationCreates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "meditour", Name: "reservations_created_total", Help: "Reservation creation attempts by outcome."},
		[]string{"outcome"}, // ok|invalid|hospital_missing|user_missing|tx_error|error
	)
	MessagesRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "meditour", Name: "messages_rendered_total", Help: "Consultation messages rendered."},
		[]string{"kind", "locale"},
	)
	DispatchEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "meditour", Name: "dispatch_events_total", Help: "Outbound message dispatch outcomes."},
		[]string{"outcome"}, // published|publish_failed|mark_failed
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "meditour", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts the standalone metrics listener when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ReservationCreates, MessagesRendered, DispatchEvents, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveReservationCreate(outcome string) {
	ReservationCreates.WithLabelValues(outcome).Inc()
}

func ObserveMessageRender(kind, locale string) {
	MessagesRendered.WithLabelValues(kind, locale).Inc()
}

func ObserveDispatch(outcome string) {
	DispatchEvents.WithLabelValues(outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
