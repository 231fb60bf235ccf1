package services

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-manager-form/internal/infrastructure/mq"
)

type FakeRabbitMQ struct {
	in chan mq.Event
}

func (f *FakeRabbitMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbitMQ) Init() error                                   { return nil }
func (f *FakeRabbitMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection                  { return nil }
