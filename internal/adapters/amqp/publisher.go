// Package amqppub publishes domain events to RabbitMQ for the chat-delivery
// subsystem. Queues are durable and deliveries persistent; publishing is
// rate-limited client-side so a dispatch sweep cannot flood the broker.
package amqppub

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"meditour_admin/internal/domain"
)

const (
	QueueReservationCreated = "reservation.created"
	QueueMessageCreated     = "consultation.message.created"
)

type Publisher struct {
	url string
	rl  *rate.Limiter
}

func New(url string, rps int) *Publisher {
	if rps <= 0 {
		rps = 20
	}
	return &Publisher{url: url, rl: rate.NewLimiter(rate.Limit(rps), rps)}
}

func (p *Publisher) PublishReservationCreated(ctx context.Context, ev domain.ReservationCreated) error {
	return p.publish(ctx, QueueReservationCreated, ev)
}

// MessageCreatedEvent is the dispatch payload for one consultation message.
type MessageCreatedEvent struct {
	MessageID  int64  `json:"message_id"`
	UserID     int64  `json:"user_id"`
	HospitalID int64  `json:"hospital_id"`
	SenderType string `json:"sender_type"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

func (p *Publisher) PublishMessageCreated(ctx context.Context, m domain.ConsultationMessage) error {
	return p.publish(ctx, QueueMessageCreated, MessageCreatedEvent{
		MessageID:  m.ID,
		UserID:     m.UserID,
		HospitalID: m.HospitalID,
		SenderType: string(m.SenderType),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// publish dials per call; callers treat errors as retriable on the next
// sweep and never as fatal.
func (p *Publisher) publish(ctx context.Context, queue string, v any) error {
	if err := p.rl.Wait(ctx); err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn().Err(err).Str("queue", queue).Msg("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Str("queue", queue).Msg("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Str("queue", queue).Msg("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.Warn().Err(err).Str("queue", queue).Msg("rabbitmq publish failed")
		return err
	}
	return nil
}
