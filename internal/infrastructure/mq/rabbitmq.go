package mq

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"file-drop-api/config"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

// Job kinds routed through the queue. Handlers must be idempotent: delivery
// is at-least-once and the periodic sweeps re-enqueue anything missed.
const (
	KindDeleteFile     = "file.delete"
	KindAbortMultipart = "multipart.abort"
)

type (
	InputCh  = chan Job
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}

	// Job is one unit of deferred work. RunAt in the future delays
	// publication (best effort; the sweeps are the reliability backstop).
	Job struct {
		ID      uuid.UUID `json:"job_id"`
		TS      time.Time `json:"time_stamp"`
		Kind    string    `json:"kind"`
		Attempt int       `json:"attempt"`
		RunAt   time.Time `json:"run_at,omitzero"`

		// file.delete payload
		FileID string `json:"file_id,omitempty"`

		// multipart.abort payload
		Bucket   string `json:"bucket,omitempty"`
		Key      string `json:"key,omitempty"`
		UploadID string `json:"upload_id,omitempty"`
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Job, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "filedropapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: nil,
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return err
}

func (r *RabbitMQ) Init() error {
	var err error
	if err = r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range []string{
		KindDeleteFile,
		KindAbortMultipart,
	} {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case j := <-r.in:
			if delay := time.Until(j.RunAt); delay > 0 {
				r.publishLater(ctx, j, delay)
				continue
			}
			if err := r.publish(ctx, j); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.String("kind", j.Kind))
			}
		case <-ctx.Done():
			close(r.in)
			r.pubCh.Close()
			return
		}
	}
}

// publishLater holds a job back until its RunAt. The timer dies with the
// process; the periodic expiry sweep catches anything lost that way.
func (r *RabbitMQ) publishLater(ctx context.Context, j Job, delay time.Duration) {
	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			if err := r.publish(ctx, j); err != nil {
				r.log.Error("mq delayed publish error", zap.Error(err), zap.String("kind", j.Kind))
			}
		case <-ctx.Done():
		}
	}()
}

func (r *RabbitMQ) publish(ctx context.Context, j Job) error {
	b, err := json.Marshal(j)
	if err != nil {
		// alert
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    j.ID.String(),
		Timestamp:    j.TS,
		Type:         j.Kind,
		Body:         b,
	}
	if err = r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		j.Kind,
		true,
		false,
		pub,
	); err != nil {
		return err
	}

	return nil
}

func (r *RabbitMQ) GetInputChan() chan Job       { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
