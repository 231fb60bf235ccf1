package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-manager-form/internal/application/ports"
	"user-manager-form/internal/infrastructure/metrics"
	"user-manager-form/internal/infrastructure/mq"
)

// PublishHook hands accepted mutations to the RabbitMQ publisher. It never
// blocks the caller: when the buffer is full the event is dropped and counted.
func PublishHook(
	rmq ports.RabbitMQ,
	source uuid.UUID,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) Hook {
	return func(_ context.Context, m Mutation) {
		e := mq.NewEvent(m.Method, m.User, source)
		select {
		case rmq.GetInputChan() <- e:
		default:
			logger.Warn("mq buffer full, event dropped",
				zap.String("event_id", e.Id.String()),
				zap.String("event_action", e.Method),
			)
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.EventsDropped).Inc()
			}
		}
	}
}

// RemoteChangeHandler refetches the list when another client instance reports
// a mutation, then calls notify so the view can redraw. Own events are skipped
// because the local refetch hook already ran for them.
func RemoteChangeHandler(
	sync ports.Synchronizer,
	source uuid.UUID,
	mCounter *prometheus.CounterVec,
	notify func(),
) func(ctx context.Context, e mq.Event) error {
	return func(ctx context.Context, e mq.Event) error {
		if e.Source == source {
			return nil
		}
		if mCounter != nil {
			mCounter.WithLabelValues(metrics.RemoteEventsSynced).Inc()
		}
		if err := sync.ListAll(ctx); err != nil {
			return err
		}
		if notify != nil {
			notify()
		}
		return nil
	}
}
