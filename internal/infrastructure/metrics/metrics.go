package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter labels.
const (
	APIRequests        = "api_requests_total"
	UsersListed        = "user_listed_total"
	UserCreated        = "user_created_total"
	UserUpdated        = "user_updated_total"
	UserDeleted        = "user_deleted_total"
	OperationFailed    = "operation_failed_total"
	EventsPublished    = "mq_events_published_total"
	EventsDropped      = "mq_events_dropped_total"
	RemoteEventsSynced = "mq_remote_events_total"
)

func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "usermanagerform",
			Name:      "general_counters",
		},
		[]string{"result"})
}
