package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meditour_admin/internal/app"
	"meditour_admin/internal/domain"
	"meditour_admin/internal/template"
)

// ---- fakes ----

type fakeHospitals struct {
	byID map[int64]domain.Hospital
	err  error
}

func (f *fakeHospitals) FindHospital(ctx context.Context, id int64) (domain.Hospital, error) {
	if f.err != nil {
		return domain.Hospital{}, f.err
	}
	h, ok := f.byID[id]
	if !ok {
		return domain.Hospital{}, domain.ErrHospitalNotFound
	}
	return h, nil
}

type fakeUsers struct {
	byID map[int64]domain.User
}

func (f *fakeUsers) FindUser(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// fakeStore commits the closure against in-memory slices; on error nothing
// sticks, mirroring the rollback guarantee.
type fakeStore struct {
	reservations []domain.Reservation
	history      []domain.StatusHistory
	messages     []domain.ConsultationMessage
	failOn       string // "", "reservation", "history", "message"
}

type fakeTx struct {
	s       *fakeStore
	res     []domain.Reservation
	hist    []domain.StatusHistory
	msgs    []domain.ConsultationMessage
	created time.Time
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx domain.ReservationTx) error) error {
	tx := &fakeTx{s: s, created: time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)}
	if err := fn(tx); err != nil {
		return err // rollback: buffered rows discarded
	}
	s.reservations = append(s.reservations, tx.res...)
	s.history = append(s.history, tx.hist...)
	s.messages = append(s.messages, tx.msgs...)
	return nil
}

func (t *fakeTx) InsertReservation(ctx context.Context, r *domain.Reservation) error {
	if t.s.failOn == "reservation" {
		return errors.New("insert reservation failed")
	}
	r.ID = int64(len(t.s.reservations)+len(t.res)) + 1
	r.CreatedAt = t.created
	r.UpdatedAt = t.created
	t.res = append(t.res, *r)
	return nil
}

func (t *fakeTx) InsertStatusHistory(ctx context.Context, h *domain.StatusHistory) error {
	if t.s.failOn == "history" {
		return errors.New("insert history failed")
	}
	h.ID = int64(len(t.s.history)+len(t.hist)) + 1
	h.CreatedAt = t.created
	t.hist = append(t.hist, *h)
	return nil
}

func (t *fakeTx) InsertMessage(ctx context.Context, m *domain.ConsultationMessage) error {
	if t.s.failOn == "message" {
		return errors.New("insert message failed")
	}
	m.ID = int64(len(t.s.messages)+len(t.msgs)) + 1
	m.CreatedAt = t.created
	t.msgs = append(t.msgs, *m)
	return nil
}

type fakeEvents struct {
	published []domain.ReservationCreated
	err       error
}

func (f *fakeEvents) PublishReservationCreated(ctx context.Context, ev domain.ReservationCreated) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, ev)
	return nil
}

// ---- helpers ----

func fixedNow() time.Time { return time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC) }

func newWorkflow(store *fakeStore, ev *fakeEvents) *app.ReservationWorkflow {
	hospitals := &fakeHospitals{byID: map[int64]domain.Hospital{
		10: {ID: 10, Name: domain.HospitalName{Localized: map[string]string{
			"ko_KR": "서울병원",
			"en_US": "Seoul Hospital",
		}}},
	}}
	users := &fakeUsers{byID: map[int64]domain.User{
		20: {ID: 20, DisplayName: "Jane", Name: "Jane Doe"},
	}}
	var pub domain.EventPublisher
	if ev != nil {
		pub = ev
	}
	return app.NewReservationWorkflow(hospitals, users, store, template.New(template.DefaultSet()), pub).
		WithClock(fixedNow)
}

func request() app.CreateReservationRequest {
	return app.CreateReservationRequest{
		HospitalID:      10,
		UserID:          20,
		Category:        "PROCEDURE",
		Language:        "en_US",
		ProcedureName:   "Botox",
		ReservationDate: "2025-12-10",
		ReservationTime: "14:30",
		DepositAmount:   100,
		Currency:        "USD",
		PaymentDeadline: "2025-12-01T00:00:00Z",
		Actor:           "ops@meditour",
	}
}

// ---- tests ----

func TestExecute_Success(t *testing.T) {
	store := &fakeStore{}
	events := &fakeEvents{}
	wf := newWorkflow(store, events)

	res := wf.Execute(context.Background(), request())
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Reservation == nil || res.Message == nil {
		t.Fatalf("result missing payload: %+v", res)
	}
	if res.Reservation.Status != "PAYMENT_PENDING" {
		t.Fatalf("status: %s", res.Reservation.Status)
	}
	if res.Reservation.ReservationDate != "2025-12-10" || res.Reservation.ReservationTime != "14:30" {
		t.Fatalf("echoed fields wrong: %+v", res.Reservation)
	}

	// One row of each, committed together.
	if len(store.reservations) != 1 || len(store.history) != 1 || len(store.messages) != 1 {
		t.Fatalf("writes: %d/%d/%d", len(store.reservations), len(store.history), len(store.messages))
	}

	h := store.history[0]
	if h.FromStatus != domain.StatusPending || h.ToStatus != domain.StatusPaymentPending {
		t.Fatalf("transition: %s -> %s", h.FromStatus, h.ToStatus)
	}
	if h.ChangedBy != "ops@meditour" {
		t.Fatalf("changedBy: %s", h.ChangedBy)
	}
	if h.Reason != "reservation created / moved to payment-pending" {
		t.Fatalf("reason: %q", h.Reason)
	}
	if h.ReservationID != store.reservations[0].ID {
		t.Fatal("history not linked to reservation")
	}

	m := store.messages[0]
	if m.SenderType != domain.SenderAdmin {
		t.Fatalf("senderType: %s", m.SenderType)
	}
	for _, want := range []string{"Seoul Hospital", "Botox", "12/10/2025", "Wednesday", "$100.00", "<payment>"} {
		if !strings.Contains(m.Content, want) {
			t.Errorf("message missing %q:\n%s", want, m.Content)
		}
	}

	if len(events.published) != 1 {
		t.Fatalf("events: %d", len(events.published))
	}
	if events.published[0].ReservationID != store.reservations[0].ID ||
		events.published[0].MessageID != m.ID {
		t.Fatalf("event payload: %+v", events.published[0])
	}
}

func TestExecute_MetadataCaptured(t *testing.T) {
	store := &fakeStore{}
	wf := newWorkflow(store, nil)

	req := request()
	req.CustomNotice = "Fasting required from midnight."
	req.ButtonText = "Pay now"
	res := wf.Execute(context.Background(), req)
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}

	meta := store.reservations[0].Meta
	if meta.Language != "en_US" || meta.Category != domain.CategoryProcedure {
		t.Fatalf("meta: %+v", meta)
	}
	if meta.CustomNotice != "Fasting required from midnight." || meta.ButtonText != "Pay now" {
		t.Fatalf("overrides not captured: %+v", meta)
	}
	if !strings.Contains(store.messages[0].Content, "[ Important Notes ]\nFasting required from midnight.") {
		t.Fatalf("notice override not rendered:\n%s", store.messages[0].Content)
	}
	if !strings.Contains(store.messages[0].Content, `"label":"Pay now"`) {
		t.Fatalf("payment marker label:\n%s", store.messages[0].Content)
	}
}

func TestExecute_ValidationFailure_NoWrites(t *testing.T) {
	store := &fakeStore{}
	wf := newWorkflow(store, nil)

	req := request()
	req.PaymentDeadline = "2025-10-01T00:00:00Z" // past relative to the pinned clock
	res := wf.Execute(context.Background(), req)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "paymentDeadline") {
		t.Fatalf("error: %q", res.Error)
	}
	if len(store.reservations)+len(store.history)+len(store.messages) != 0 {
		t.Fatal("validation failure must not write")
	}
}

func TestExecute_MissingReferences(t *testing.T) {
	store := &fakeStore{}
	wf := newWorkflow(store, nil)

	req := request()
	req.HospitalID = 999
	if res := wf.Execute(context.Background(), req); res.Success || res.Error != "hospital not found" {
		t.Fatalf("hospital: %+v", res)
	}

	req = request()
	req.UserID = 999
	if res := wf.Execute(context.Background(), req); res.Success || res.Error != "user not found" {
		t.Fatalf("user: %+v", res)
	}
	if len(store.history) != 0 {
		t.Fatal("missing reference must not write")
	}
}

func TestExecute_TxFailure_RollsBackEverything(t *testing.T) {
	for _, failOn := range []string{"reservation", "history", "message"} {
		store := &fakeStore{failOn: failOn}
		wf := newWorkflow(store, nil)

		res := wf.Execute(context.Background(), request())
		if res.Success {
			t.Fatalf("failOn=%s: expected failure", failOn)
		}
		if len(store.reservations)+len(store.history)+len(store.messages) != 0 {
			t.Fatalf("failOn=%s: partial write visible", failOn)
		}
	}
}

func TestExecute_PublishFailureDoesNotFailWorkflow(t *testing.T) {
	store := &fakeStore{}
	events := &fakeEvents{err: errors.New("broker down")}
	wf := newWorkflow(store, events)

	res := wf.Execute(context.Background(), request())
	if !res.Success {
		t.Fatalf("publish failure must not fail the workflow: %s", res.Error)
	}
	if len(store.reservations) != 1 {
		t.Fatal("reservation should be committed")
	}
}

func TestExecute_LookupErrorFolded(t *testing.T) {
	store := &fakeStore{}
	hospitals := &fakeHospitals{err: errors.New("connection refused")}
	users := &fakeUsers{byID: map[int64]domain.User{20: {ID: 20}}}
	wf := app.NewReservationWorkflow(hospitals, users, store, template.New(template.DefaultSet()), nil).
		WithClock(fixedNow)

	res := wf.Execute(context.Background(), request())
	if res.Success || res.Error == "" {
		t.Fatalf("expected folded error, got %+v", res)
	}
}
