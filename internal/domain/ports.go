package domain

import "context"

type HospitalLookup interface {
	FindHospital(ctx context.Context, id int64) (Hospital, error)
}

type UserLookup interface {
	FindUser(ctx context.Context, id int64) (User, error)
}

// ReservationTx is the unit-of-work surface: the three inserts of a
// reservation creation, composable inside one transaction. Inserts populate
// the generated ID and CreatedAt on the passed record.
type ReservationTx interface {
	InsertReservation(ctx context.Context, r *Reservation) error
	InsertStatusHistory(ctx context.Context, h *StatusHistory) error
	InsertMessage(ctx context.Context, m *ConsultationMessage) error
}

// TxStore runs fn inside a single transaction. A nil return from fn commits;
// any error rolls everything back so no partial write is ever visible.
type TxStore interface {
	WithinTx(ctx context.Context, fn func(tx ReservationTx) error) error
}

// ReservationReader serves the back-office read screens.
type ReservationReader interface {
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	ListReservations(ctx context.Context, limit int) ([]Reservation, error)
	ListStatusHistory(ctx context.Context, reservationID int64) ([]StatusHistory, error)
}

// MessageOutbox is the dispatcher's view of persisted messages.
type MessageOutbox interface {
	ListUndispatched(ctx context.Context, limit int) ([]ConsultationMessage, error)
	MarkDispatched(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ReservationCreated is handed to the event publisher after a committed
// creation. MessageID is the side channel correlating message to reservation.
type ReservationCreated struct {
	ReservationID int64  `json:"reservation_id"`
	HospitalID    int64  `json:"hospital_id"`
	UserID        int64  `json:"user_id"`
	Status        string `json:"status"`
	MessageID     int64  `json:"message_id"`
	CreatedAt     string `json:"created_at"`
}

type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, ev ReservationCreated) error
}

// HospitalView is the read model for the hospital lookup endpoint.
type HospitalView struct {
	ID       int64
	Name     string
	Language string
}
