package rmqconsumer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-manager-form/config"
	"user-manager-form/internal/infrastructure/mq"
)

func Test_delivery_Table(t *testing.T) {
	src := uuid.MustParse("6f1c2a3b-0000-4000-8000-000000000001")
	body := `{"event_action":"PUT","user_id":"2","source":"` + src.String() + `","user_payload":{"id":2}}`

	type tc struct {
		name       string
		routingKey string
		body       string
		handlerErr error
		wantCalled bool
		wantErr    bool
	}
	cases := []tc{
		{name: "POST handled", routingKey: "POST", body: body, wantCalled: true},
		{name: "PUT handled", routingKey: "PUT", body: body, wantCalled: true},
		{name: "DELETE handled", routingKey: "DELETE", body: body, wantCalled: true},
		{name: "unknown routing key", routingKey: "PATCH", body: body, wantErr: true},
		{name: "broken body", routingKey: "POST", body: "{", wantErr: true},
		{name: "handler error surfaces", routingKey: "POST", body: body, handlerErr: errors.New("refetch failed"), wantCalled: true, wantErr: true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var got *mq.Event
			c := New(config.MQ{}, zap.NewNop(), func(ctx context.Context, e mq.Event) error {
				got = &e
				return tt.handlerErr
			})

			err := c.delivery(context.Background(), amqp091.Delivery{RoutingKey: tt.routingKey, Body: []byte(tt.body)})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			if !tt.wantCalled {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, "2", got.UserID)
			assert.Equal(t, src, got.Source)
			assert.Equal(t, uint64(2), got.Payload.ID)
		})
	}
}

func TestDeliveryWorker_StopsOnClosedChannel(t *testing.T) {
	ch := make(chan amqp091.Delivery)
	close(ch)
	c := New(config.MQ{}, zap.NewNop(), nil)
	c.chDelivery = ch

	done := make(chan struct{})
	go func() {
		c.DeliveryWorker(context.Background())
		close(done)
	}()
	<-done
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
