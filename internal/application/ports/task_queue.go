package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"file-drop-api/internal/infrastructure/mq"
)

type TaskQueue interface {
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetInputChan() chan mq.Job
	GetConn() *amqp091.Connection
}
