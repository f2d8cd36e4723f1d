package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HostRoutingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_host_routing_total",
			Help: "Inbound requests by tenant addressing mode",
		},
		[]string{"mode"},
	)
	ExchangeRateLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_exchange_rate_lookups_total",
			Help: "Exchange rate reads by outcome (cached, fresh, stale, fallback)",
		},
		[]string{"outcome"},
	)
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Outbound calls by target and status class",
		},
		[]string{"target", "status"},
	)
	APIClientRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_api_client_retries_total",
			Help: "Retries issued by the storefront API client",
		},
	)
	RateLimitBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_rate_limiter_blocked_total",
			Help: "Requests blocked by the rate limiter",
		},
		[]string{"route"},
	)
	TenantConfigFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_tenant_config_fallbacks_total",
			Help: "Tenant config loads that fell back to the default configuration",
		},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Inbound request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(HostRoutingDecisions)
	prometheus.MustRegister(ExchangeRateLookups)
	prometheus.MustRegister(UpstreamRequests)
	prometheus.MustRegister(APIClientRetries)
	prometheus.MustRegister(RateLimitBlocked)
	prometheus.MustRegister(TenantConfigFallbacks)
	prometheus.MustRegister(HTTPRequestDuration)
}

// StatusClass buckets an HTTP status into "2xx", "4xx", ... and "error" for transport failures (status 0).
func StatusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
