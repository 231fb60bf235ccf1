package rest

const (
	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
