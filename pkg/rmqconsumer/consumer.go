package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"file-drop-api/config"
	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Failed jobs are republished with a doubling delay until maxAttempts, then
// dropped: the periodic sweeps re-discover any work lost here.
const (
	maxAttempts    = 5
	retryBaseDelay = 30 * time.Second
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	handler    ports.JobHandler
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, handler ports.JobHandler) *Consumer {
	return &Consumer{
		cfg:     cfg,
		log:     logger,
		handler: handler,
	}
}

var err error

func (c *Consumer) Connect(dsn string) error {
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return err
}

func (c *Consumer) Init() error {
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range []string{
		mq.KindDeleteFile,
		mq.KindAbortMultipart,
	} {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var cerr error
	c.chDelivery, cerr = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if cerr != nil {
		return fmt.Errorf("consume: %w", cerr)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-c.chDelivery:
			// we can also use "fan-out" chan here with "worker-pool"
			// in case of heavy job processing
			if err = c.delivery(ctx, msg); err != nil {
				// alert
				c.log.Error("mq job delivery error", zap.Error(err))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	var j mq.Job
	if err := json.Unmarshal(msg.Body, &j); err != nil {
		return fmt.Errorf("unmarshal job: %w", err)
	}

	if err := c.handle(ctx, j); err != nil {
		c.retry(ctx, j, err)
	}

	return nil
}

func (c *Consumer) handle(ctx context.Context, j mq.Job) error {
	switch j.Kind {
	case mq.KindDeleteFile:
		return c.handler.DeleteFile(ctx, j.FileID)
	case mq.KindAbortMultipart:
		return c.handler.AbortMultipart(ctx, j.Bucket, j.Key, j.UploadID)
	default:
		c.log.Warn("unknown job kind", zap.String("kind", j.Kind))
		return nil
	}
}

// retry republishes the failed job after a doubling delay. Attempts past the
// cap are dropped; the sweeps are the backstop for whatever is lost.
func (c *Consumer) retry(ctx context.Context, j mq.Job, cause error) {
	j.Attempt++
	if j.Attempt >= maxAttempts {
		c.log.Error("job exhausted retries, dropping",
			zap.String("kind", j.Kind), zap.Int("attempt", j.Attempt), zap.Error(cause))
		return
	}

	delay := retryBaseDelay << (j.Attempt - 1)
	c.log.Warn("job failed, scheduling retry",
		zap.String("kind", j.Kind), zap.Int("attempt", j.Attempt),
		zap.Duration("delay", delay), zap.Error(cause))

	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			if err := c.republish(ctx, j); err != nil {
				c.log.Error("job retry republish failed", zap.Error(err))
			}
		case <-ctx.Done():
		}
	}()
}

func (c *Consumer) republish(ctx context.Context, j mq.Job) error {
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return c.chConsume.PublishWithContext(
		ctx,
		c.cfg.Exchange,
		j.Kind,
		true,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    j.ID.String(),
			Timestamp:    j.TS,
			Type:         j.Kind,
			Body:         b,
		},
	)
}
