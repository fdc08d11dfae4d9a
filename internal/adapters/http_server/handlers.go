package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"meditour_admin/internal/app"
	"meditour_admin/internal/domain"
)

type Handlers struct {
	W *app.ReservationWorkflow
	Q *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/reservations", h.createReservation)
	s.mux.Get("/v1/reservations", h.listReservations)
	s.mux.Get("/v1/reservations/{id}", h.getReservation)
	s.mux.Get("/v1/hospitals/{id}", h.getHospital)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// createReservation always answers with the workflow's uniform envelope:
// 201 when the transaction committed, 200 with success:false otherwise.
func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req app.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	res := h.W.Execute(r.Context(), req)
	status := http.StatusOK
	if res.Success {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

type reservationResponse struct {
	ID              int64                  `json:"id"`
	HospitalID      int64                  `json:"hospitalId"`
	UserID          int64                  `json:"userId"`
	Category        string                 `json:"category"`
	ProcedureName   string                 `json:"procedureName"`
	ReservationDate string                 `json:"reservationDate"`
	ReservationTime string                 `json:"reservationTime"`
	DepositAmount   int64                  `json:"depositAmount"`
	Currency        string                 `json:"currency"`
	PaymentDeadline string                 `json:"paymentDeadline"`
	Status          string                 `json:"status"`
	Meta            domain.ReservationMeta `json:"meta"`
	CreatedAt       string                 `json:"createdAt"`
	History         []historyResponse      `json:"history,omitempty"`
}

type historyResponse struct {
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	ChangedBy  string `json:"changedBy"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"createdAt"`
}

func toReservationResponse(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              res.ID,
		HospitalID:      res.HospitalID,
		UserID:          res.UserID,
		Category:        string(res.Category),
		ProcedureName:   res.ProcedureName,
		ReservationDate: res.ReservationDate.Format("2006-01-02"),
		ReservationTime: res.ReservationTime,
		DepositAmount:   res.DepositAmount,
		Currency:        res.Currency,
		PaymentDeadline: res.PaymentDeadline.UTC().Format(time.RFC3339),
		Status:          string(res.Status),
		Meta:            res.Meta,
		CreatedAt:       res.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	res, err := h.Q.GetReservation(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "reservation not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	out := toReservationResponse(res)
	if hist, err := h.Q.ListStatusHistory(r.Context(), id); err == nil {
		for _, hrow := range hist {
			out.History = append(out.History, historyResponse{
				FromStatus: string(hrow.FromStatus),
				ToStatus:   string(hrow.ToStatus),
				ChangedBy:  hrow.ChangedBy,
				Reason:     hrow.Reason,
				CreatedAt:  hrow.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	rs, err := h.Q.ListReservations(r.Context(), limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}
	out := make([]reservationResponse, 0, len(rs))
	for _, res := range rs {
		out = append(out, toReservationResponse(res))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHospital(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	lang := r.URL.Query().Get("lang")
	hv, err := h.Q.GetHospital(r.Context(), id, lang)
	if err != nil {
		if errors.Is(err, domain.ErrHospitalNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hospital not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}
	w.Header().Set("Content-Language", hv.Language)
	writeJSON(w, http.StatusOK, struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Language string `json:"language"`
	}{hv.ID, hv.Name, hv.Language})
}
