package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"meditour_admin/internal/adapters/observability"
	"meditour_admin/internal/domain"
	"meditour_admin/internal/i18n"
	"meditour_admin/internal/template"
)

const createdReason = "reservation created / moved to payment-pending"

// ReservationWorkflow performs the one state transition this service owns:
// a validated request becomes a PAYMENT_PENDING reservation, a status-history
// row and an outbound consultation message, committed as a single unit.
type ReservationWorkflow struct {
	hospitals domain.HospitalLookup
	users     domain.UserLookup
	store     domain.TxStore
	engine    *template.Engine
	events    domain.EventPublisher // optional, best-effort
	now       func() time.Time
}

func NewReservationWorkflow(h domain.HospitalLookup, u domain.UserLookup, s domain.TxStore, e *template.Engine, ev domain.EventPublisher) *ReservationWorkflow {
	return &ReservationWorkflow{hospitals: h, users: u, store: s, engine: e, events: ev, now: time.Now}
}

// WithClock overrides the workflow clock; tests pin "now".
func (w *ReservationWorkflow) WithClock(now func() time.Time) *ReservationWorkflow {
	w.now = now
	return w
}

type ReservationResult struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	ProcedureName   string `json:"procedureName"`
	ReservationDate string `json:"reservationDate"`
	ReservationTime string `json:"reservationTime"`
	DepositAmount   int64  `json:"depositAmount"`
	Currency        string `json:"currency"`
	PaymentDeadline string `json:"paymentDeadline"`
	CreatedAt       string `json:"createdAt"`
}

type MessageResult struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// CreateReservationResult is the uniform envelope: nothing escapes Execute
// as an error, success or failure is always expressed here.
type CreateReservationResult struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	Reservation *ReservationResult `json:"reservation,omitempty"`
	Message     *MessageResult     `json:"message,omitempty"`
}

func failure(msg string) CreateReservationResult {
	return CreateReservationResult{Success: false, Error: msg}
}

// Execute validates the request, resolves both references, then commits the
// reservation, its first history row and the rendered guide message in one
// transaction. Every failure path is logged and folded into the result;
// retry is the caller's business.
func (w *ReservationWorkflow) Execute(ctx context.Context, req CreateReservationRequest) CreateReservationResult {
	parsed, err := ValidateCreateReservation(req, w.now())
	if err != nil {
		observability.ObserveReservationCreate("invalid")
		return failure(err.Error())
	}

	hospital, err := w.hospitals.FindHospital(ctx, req.HospitalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrHospitalNotFound) {
			observability.ObserveReservationCreate("hospital_missing")
			return failure("hospital not found")
		}
		log.Error().Err(err).Int64("hospital_id", req.HospitalID).Msg("hospital lookup failed")
		observability.ObserveReservationCreate("error")
		return failure(err.Error())
	}

	user, err := w.users.FindUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			observability.ObserveReservationCreate("user_missing")
			return failure("user not found")
		}
		log.Error().Err(err).Int64("user_id", req.UserID).Msg("user lookup failed")
		observability.ObserveReservationCreate("error")
		return failure(err.Error())
	}

	loc := i18n.Parse(req.Language)
	actor := req.Actor
	if actor == "" {
		actor = "admin"
	}

	res := domain.Reservation{
		HospitalID:      hospital.ID,
		UserID:          user.ID,
		Category:        category(req.Category),
		ProcedureName:   req.ProcedureName,
		ReservationDate: parsed.date,
		ReservationTime: req.ReservationTime,
		DepositAmount:   req.DepositAmount,
		Currency:        req.Currency,
		PaymentDeadline: parsed.deadline,
		Status:          domain.StatusPaymentPending,
		Meta: domain.ReservationMeta{
			Category:        category(req.Category),
			Language:        string(loc),
			CustomGuideText: req.CustomGuideText,
			CustomDetails:   req.CustomDetails,
			CustomNotice:    req.CustomNotice,
			ButtonText:      req.ButtonText,
		},
	}
	msg := domain.ConsultationMessage{
		UserID:     user.ID,
		HospitalID: hospital.ID,
		SenderType: domain.SenderAdmin,
	}

	err = w.store.WithinTx(ctx, func(tx domain.ReservationTx) error {
		if err := tx.InsertReservation(ctx, &res); err != nil {
			return err
		}
		hist := domain.StatusHistory{
			ReservationID: res.ID,
			FromStatus:    domain.StatusPending,
			ToStatus:      domain.StatusPaymentPending,
			ChangedBy:     actor,
			Reason:        createdReason,
		}
		if err := tx.InsertStatusHistory(ctx, &hist); err != nil {
			return err
		}

		content := w.engine.Render(template.KindGuide, loc, template.RenderData{
			HospitalName:    hospital.Name.ForLocale(string(loc)),
			ProcedureName:   req.ProcedureName,
			ReservationDate: parsed.date,
			ReservationTime: req.ReservationTime,
			DepositAmount:   req.DepositAmount,
			Currency:        req.Currency,
			PaymentDeadline: parsed.deadline,
		}, template.Overrides{
			GuideText:  req.CustomGuideText,
			Details:    req.CustomDetails,
			Notice:     req.CustomNotice,
			ButtonText: req.ButtonText,
		})
		content = template.AppendPaymentMarker(content, template.PaymentDescriptor{
			Type:     "deposit",
			Amount:   req.DepositAmount,
			Currency: req.Currency,
			Label:    w.engine.ButtonLabel(loc, req.ButtonText),
			Deadline: parsed.deadline.UTC().Format(time.RFC3339),
		})
		observability.ObserveMessageRender(string(template.KindGuide), string(loc))

		msg.Content = content
		return tx.InsertMessage(ctx, &msg)
	})
	if err != nil {
		log.Error().Err(err).
			Int64("hospital_id", hospital.ID).
			Int64("user_id", user.ID).
			Msg("reservation transaction failed")
		observability.ObserveReservationCreate("tx_error")
		return failure(err.Error())
	}

	observability.ObserveReservationCreate("ok")
	log.Info().
		Int64("reservation_id", res.ID).
		Int64("message_id", msg.ID).
		Str("locale", string(loc)).
		Msg("reservation created")

	if w.events != nil {
		ev := domain.ReservationCreated{
			ReservationID: res.ID,
			HospitalID:    hospital.ID,
			UserID:        user.ID,
			Status:        string(res.Status),
			MessageID:     msg.ID,
			CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
		}
		if perr := w.events.PublishReservationCreated(ctx, ev); perr != nil {
			// Delivery hand-off is best-effort; the dispatcher sweeps the rest.
			log.Warn().Err(perr).Int64("reservation_id", res.ID).Msg("event publish failed")
		}
	}

	return CreateReservationResult{
		Success: true,
		Reservation: &ReservationResult{
			ID:              res.ID,
			Status:          string(res.Status),
			ProcedureName:   res.ProcedureName,
			ReservationDate: res.ReservationDate.Format("2006-01-02"),
			ReservationTime: res.ReservationTime,
			DepositAmount:   res.DepositAmount,
			Currency:        res.Currency,
			PaymentDeadline: res.PaymentDeadline.UTC().Format(time.RFC3339),
			CreatedAt:       res.CreatedAt.UTC().Format(time.RFC3339),
		},
		Message: &MessageResult{
			ID:        msg.ID,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
		},
	}
}

func category(s string) domain.ReservationCategory {
	switch domain.ReservationCategory(s) {
	case domain.CategoryProcedure, domain.CategoryLimousine, domain.CategoryOther:
		return domain.ReservationCategory(s)
	default:
		return domain.CategoryOther
	}
}
