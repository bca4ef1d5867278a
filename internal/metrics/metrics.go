package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ChatStreamsTotal counts terminated chat streams by outcome:
	// complete, truncated, rejected or failed.
	ChatStreamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_chat_streams_total",
			Help: "Total number of chat streams by outcome.",
		},
		[]string{"outcome"},
	)

	ChatFramesRelayedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_chat_frames_relayed_total",
			Help: "Total number of content frames relayed to chat clients.",
		},
	)

	ChatUpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_chat_upstream_errors_total",
			Help: "Total number of upstream completion errors by kind.",
		},
		[]string{"kind"},
	)

	ChatFirstDeltaSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_chat_first_delta_seconds",
			Help:    "Time from request to the first upstream delta.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	BlogFeedFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_blog_feed_fetches_total",
			Help: "Total number of blog feed fetches by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ChatStreamsTotal,
		ChatFramesRelayedTotal,
		ChatUpstreamErrorsTotal,
		ChatFirstDeltaSeconds,
		BlogFeedFetchesTotal,
	)
}
