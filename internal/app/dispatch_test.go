package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"meditour_admin/internal/app"
	"meditour_admin/internal/domain"
)

type fakeOutbox struct {
	mu      sync.Mutex
	pending []domain.ConsultationMessage
	marked  []int64
	markErr error
	listErr error
}

func (f *fakeOutbox) ListUndispatched(ctx context.Context, limit int) ([]domain.ConsultationMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkDispatched(ctx context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, id)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	sent   []int64
	failID int64
}

func (f *fakePublisher) PublishMessageCreated(ctx context.Context, m domain.ConsultationMessage) error {
	if m.ID == f.failID {
		return errors.New("broker unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m.ID)
	return nil
}

func pendingMessages(n int) []domain.ConsultationMessage {
	out := make([]domain.ConsultationMessage, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.ConsultationMessage{
			ID: int64(i), UserID: 20, HospitalID: 10,
			SenderType: domain.SenderAdmin, Content: "hello",
			CreatedAt: time.Now(),
		})
	}
	return out
}

func TestSweep_DispatchesAll(t *testing.T) {
	outbox := &fakeOutbox{pending: pendingMessages(5)}
	pub := &fakePublisher{}
	svc := app.NewDispatchService(outbox, pub)

	n, err := svc.Sweep(context.Background(), 10, 3)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 5 || len(pub.sent) != 5 || len(outbox.marked) != 5 {
		t.Fatalf("dispatched=%d sent=%d marked=%d", n, len(pub.sent), len(outbox.marked))
	}
}

func TestSweep_PublishFailureLeavesMessagePending(t *testing.T) {
	outbox := &fakeOutbox{pending: pendingMessages(3)}
	pub := &fakePublisher{failID: 2}
	svc := app.NewDispatchService(outbox, pub)

	n, err := svc.Sweep(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 2 {
		t.Fatalf("dispatched=%d", n)
	}
	for _, id := range outbox.marked {
		if id == 2 {
			t.Fatal("failed message must stay undispatched")
		}
	}
}

func TestSweep_BatchLimit(t *testing.T) {
	outbox := &fakeOutbox{pending: pendingMessages(8)}
	pub := &fakePublisher{}
	svc := app.NewDispatchService(outbox, pub)

	n, err := svc.Sweep(context.Background(), 4, 2)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestSweep_ListErrorSurfaces(t *testing.T) {
	outbox := &fakeOutbox{listErr: errors.New("db down")}
	svc := app.NewDispatchService(outbox, &fakePublisher{})
	if _, err := svc.Sweep(context.Background(), 10, 2); err == nil {
		t.Fatal("expected error")
	}
}
