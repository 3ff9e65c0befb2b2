package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StoreWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "presensi", Name: "store_writes_total", Help: "Persisted document writes",
	})
	StoreErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "presensi", Name: "store_errors_total", Help: "Store load/save failures",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "presensi", Name: "handler_errors_total", Help: "HTTP handler errors",
	})
	InsightCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "presensi", Name: "insight_calls_total", Help: "Narrative insight requests",
	}, []string{"outcome"})
	StorePersist = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "presensi", Name: "store_persist_seconds", Help: "Document persist latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(StoreWrites, StoreErrors, HandlerErrors, InsightCalls, StorePersist)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveStorePersist(d time.Duration) { StorePersist.Observe(d.Seconds()) }
