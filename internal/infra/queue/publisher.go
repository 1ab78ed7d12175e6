package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события в RabbitMQ через долгоживущее соединение.
// Ошибки публикации логируются и возвращаются вызывающему - завершение
// сессии не должно падать из-за недоступного брокера.
type Publisher struct {
	conn *amqp.Connection
	log  Logger
}

// NewPublisher подключается к брокеру и объявляет очередь завершённых
// сессий (durable, идемпотентно)
func NewPublisher(url string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		SessionCompletedQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("queue: declare queue: %w", err)
	}

	return &Publisher{conn: conn, log: log}, nil
}

// PublishSessionCompleted публикует событие завершения сессии.
// Сообщение помечается persistent и переживает рестарт брокера.
func (p *Publisher) PublishSessionCompleted(ctx context.Context, event SessionCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("queue: marshal event for reservation id=%d: %v", event.ReservationID, err)
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.log.Error("queue: open channel for reservation id=%d: %v", event.ReservationID, err)
		return err
	}
	defer func() { _ = ch.Close() }()

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		SessionCompletedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		p.log.Error("queue: publish session completed for reservation id=%d: %v", event.ReservationID, err)
		return err
	}

	p.log.Info("queue: published session completed event for reservation id=%d", event.ReservationID)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	return p.conn.Close()
}
