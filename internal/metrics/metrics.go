package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route template and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ChatMessagesEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "chat_messages_evicted_total",
			Help:      "Chat messages removed by the retention sweep.",
		},
	)

	StoreFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "store_fallback_total",
			Help:      "Times startup fell back to the in-memory store.",
		},
	)
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
