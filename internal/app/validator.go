package app

import (
	"regexp"
	"strings"
	"time"

	"meditour_admin/internal/domain"
)

// CreateReservationRequest is the external input contract. Dates arrive as
// strings and are parsed during validation.
type CreateReservationRequest struct {
	HospitalID      int64  `json:"hospitalId"`
	UserID          int64  `json:"userId"`
	Category        string `json:"category"` // PROCEDURE | LIMOUSINE | OTHER
	Language        string `json:"language"` // ko_KR | en_US | th_TH
	ProcedureName   string `json:"procedureName"`
	ReservationDate string `json:"reservationDate"` // YYYY-MM-DD
	ReservationTime string `json:"reservationTime"` // HH:MM, 24h
	DepositAmount   int64  `json:"depositAmount"`   // whole currency units
	Currency        string `json:"currency"`
	PaymentDeadline string `json:"paymentDeadline"` // ISO-8601
	CustomGuideText string `json:"customGuideText,omitempty"`
	CustomDetails   string `json:"customDetails,omitempty"`
	CustomNotice    string `json:"customNotice,omitempty"`
	ButtonText      string `json:"buttonText,omitempty"`
	Actor           string `json:"actor,omitempty"` // acting back-office principal
}

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// validatedTimes carries the parsed temporal fields so the workflow does not
// re-parse what validation already proved well-formed.
type validatedTimes struct {
	date     time.Time // reservation date at midnight UTC
	deadline time.Time
}

// ValidateCreateReservation runs the structural and temporal checks in fixed
// order; the first failing rule wins. Pure apart from the injected clock.
func ValidateCreateReservation(req CreateReservationRequest, now time.Time) (validatedTimes, error) {
	var v validatedTimes

	if req.HospitalID <= 0 {
		return v, domain.Invalid("hospitalId", "is required")
	}
	if req.UserID <= 0 {
		return v, domain.Invalid("userId", "is required")
	}
	if strings.TrimSpace(req.ProcedureName) == "" {
		return v, domain.Invalid("procedureName", "must not be empty")
	}

	if req.ReservationDate == "" {
		return v, domain.Invalid("reservationDate", "is required")
	}
	date, err := time.ParseInLocation("2006-01-02", req.ReservationDate, time.UTC)
	if err != nil {
		return v, domain.Invalid("reservationDate", "must be a valid date in YYYY-MM-DD form")
	}

	if !timePattern.MatchString(req.ReservationTime) {
		return v, domain.Invalid("reservationTime", "must be a valid HH:MM time")
	}

	if req.DepositAmount <= 0 {
		return v, domain.Invalid("depositAmount", "must be greater than zero")
	}

	if req.PaymentDeadline == "" {
		return v, domain.Invalid("paymentDeadline", "is required")
	}
	deadline, err := time.Parse(time.RFC3339, req.PaymentDeadline)
	if err != nil {
		return v, domain.Invalid("paymentDeadline", "must be a valid ISO-8601 timestamp")
	}
	if !deadline.After(now) {
		return v, domain.Invalid("paymentDeadline", "must be in the future")
	}
	if !date.After(deadline) {
		return v, domain.Invalid("reservationDate", "must be after the payment deadline")
	}

	v.date = date
	v.deadline = deadline
	return v, nil
}
