package domain

import "time"

type ReservationStatus string

const (
	StatusPending        ReservationStatus = "PENDING"
	StatusPaymentPending ReservationStatus = "PAYMENT_PENDING"
	StatusConfirmed      ReservationStatus = "CONFIRMED"
	StatusCompleted      ReservationStatus = "COMPLETED"
	StatusCancelled      ReservationStatus = "CANCELLED"
)

type ReservationCategory string

const (
	CategoryProcedure ReservationCategory = "PROCEDURE"
	CategoryLimousine ReservationCategory = "LIMOUSINE"
	CategoryOther     ReservationCategory = "OTHER"
)

// ReservationMeta is the per-reservation metadata bag. The four Custom*
// fields are the only legal content overrides; language and category are
// duplicated here so the message can be re-rendered without joining back
// to the request.
type ReservationMeta struct {
	Category        ReservationCategory `json:"category"`
	Language        string              `json:"language"`
	CustomGuideText string              `json:"customGuideText,omitempty"`
	CustomDetails   string              `json:"customDetails,omitempty"`
	CustomNotice    string              `json:"customNotice,omitempty"`
	ButtonText      string              `json:"buttonText,omitempty"`
}

type Reservation struct {
	ID              int64
	HospitalID      int64
	UserID          int64
	Category        ReservationCategory
	ProcedureName   string
	ReservationDate time.Time // calendar date, midnight UTC
	ReservationTime string    // HH:MM, 24h
	DepositAmount   int64     // whole currency units
	Currency        string    // ISO code
	PaymentDeadline time.Time
	Status          ReservationStatus
	Meta            ReservationMeta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatusHistory is one row of the append-only transition ledger.
type StatusHistory struct {
	ID            int64
	ReservationID int64
	FromStatus    ReservationStatus
	ToStatus      ReservationStatus
	ChangedBy     string
	Reason        string
	CreatedAt     time.Time
}

type SenderType string

const SenderAdmin SenderType = "ADMIN"

// ConsultationMessage is the rendered artifact delivered to the user's
// support channel. It is correlated to its reservation by content, not by
// foreign key; DispatchedAt is nil until the outbound dispatcher picks it up.
type ConsultationMessage struct {
	ID           int64
	UserID       int64
	HospitalID   int64
	SenderType   SenderType
	Content      string
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
