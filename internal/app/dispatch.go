package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"meditour_admin/internal/adapters/observability"
	"meditour_admin/internal/domain"
)

// MessagePublisher is the outbound side of a dispatch sweep.
type MessagePublisher interface {
	PublishMessageCreated(ctx context.Context, m domain.ConsultationMessage) error
}

// DispatchService drains undispatched consultation messages to the delivery
// queue. A message that fails to publish stays undispatched and is retried
// on the next sweep; there is no retry within a sweep.
type DispatchService struct {
	outbox domain.MessageOutbox
	pub    MessagePublisher
}

func NewDispatchService(outbox domain.MessageOutbox, pub MessagePublisher) *DispatchService {
	return &DispatchService{outbox: outbox, pub: pub}
}

// Sweep publishes up to batch messages with at most workers in flight and
// returns how many were dispatched.
func (s *DispatchService) Sweep(ctx context.Context, batch int, workers int64) (int, error) {
	msgs, err := s.outbox.ListUndispatched(ctx, batch)
	if err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = 1
	}

	sem := semaphore.NewWeighted(workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	dispatched := 0

	for _, m := range msgs {
		m := m
		if err := sem.Acquire(ctx, 1); err != nil {
			break // context cancelled; finish what is in flight
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.pub.PublishMessageCreated(ctx, m); err != nil {
				observability.ObserveDispatch("publish_failed")
				log.Warn().Err(err).Int64("message_id", m.ID).Msg("dispatch publish failed")
				return
			}
			if err := s.outbox.MarkDispatched(ctx, m.ID); err != nil {
				// Published but not marked: the next sweep may deliver a
				// duplicate; consumers dedupe on message_id.
				observability.ObserveDispatch("mark_failed")
				log.Error().Err(err).Int64("message_id", m.ID).Msg("mark dispatched failed")
				return
			}
			observability.ObserveDispatch("published")
			mu.Lock()
			dispatched++
			mu.Unlock()
		}()
	}
	wg.Wait()
	return dispatched, nil
}
