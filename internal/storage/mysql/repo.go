package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"meditour_admin/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- seed / admin write paths ----

func (r *Repo) UpsertHospital(ctx context.Context, h domain.Hospital) error {
	name, err := json.Marshal(h.Name)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertHospitalSQL, h.ID, string(name))
	return err
}

func (r *Repo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, upsertUserSQL, u.ID, u.DisplayName, u.Name)
	return err
}

// ---- lookup ports ----

func (r *Repo) FindHospital(ctx context.Context, id int64) (domain.Hospital, error) {
	var h domain.Hospital
	var nameRaw []byte
	err := r.db.QueryRowContext(ctx, findHospitalSQL, id).Scan(&h.ID, &nameRaw)
	if err == sql.ErrNoRows {
		return domain.Hospital{}, domain.ErrHospitalNotFound
	}
	if err != nil {
		return domain.Hospital{}, err
	}
	if err := json.Unmarshal(nameRaw, &h.Name); err != nil {
		return domain.Hospital{}, err
	}
	return h, nil
}

func (r *Repo) FindUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	var display, name sql.NullString
	err := r.db.QueryRowContext(ctx, findUserSQL, id).Scan(&u.ID, &display, &name)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.DisplayName = display.String
	u.Name = name.String
	return u, nil
}

// ---- transactional unit of work ----

// WithinTx runs fn against one transaction. fn returning nil commits; any
// error rolls back, so the three creation inserts land together or not at
// all.
func (r *Repo) WithinTx(ctx context.Context, fn func(tx domain.ReservationTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&unit{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type unit struct{ tx *sql.Tx }

func (u *unit) InsertReservation(ctx context.Context, res *domain.Reservation) error {
	meta, err := json.Marshal(res.Meta)
	if err != nil {
		return err
	}
	out, err := u.tx.ExecContext(ctx, insertReservationSQL,
		res.HospitalID,
		res.UserID,
		string(res.Category),
		res.ProcedureName,
		res.ReservationDate.Format("2006-01-02"),
		res.ReservationTime,
		res.DepositAmount,
		res.Currency,
		res.PaymentDeadline.UTC(),
		string(res.Status),
		string(meta),
	)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = id
	return u.tx.QueryRowContext(ctx, reservationTimesSQL, id).Scan(&res.CreatedAt, &res.UpdatedAt)
}

func (u *unit) InsertStatusHistory(ctx context.Context, h *domain.StatusHistory) error {
	out, err := u.tx.ExecContext(ctx, insertStatusHistorySQL,
		h.ReservationID,
		string(h.FromStatus),
		string(h.ToStatus),
		h.ChangedBy,
		h.Reason,
	)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	return u.tx.QueryRowContext(ctx, historyTimeSQL, id).Scan(&h.CreatedAt)
}

func (u *unit) InsertMessage(ctx context.Context, m *domain.ConsultationMessage) error {
	out, err := u.tx.ExecContext(ctx, insertMessageSQL,
		m.UserID,
		m.HospitalID,
		string(m.SenderType),
		m.Content,
	)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return u.tx.QueryRowContext(ctx, messageTimeSQL, id).Scan(&m.CreatedAt)
}

// ---- read paths ----

func (r *Repo) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx, getReservationSQL, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return res, err
}

func (r *Repo) ListReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, listReservationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repo) ListStatusHistory(ctx context.Context, reservationID int64) ([]domain.StatusHistory, error) {
	rows, err := r.db.QueryContext(ctx, listStatusHistorySQL, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StatusHistory
	for rows.Next() {
		var h domain.StatusHistory
		var from, to, by, reason sql.NullString
		if err := rows.Scan(&h.ID, &h.ReservationID, &from, &to, &by, &reason, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.FromStatus = domain.ReservationStatus(from.String)
		h.ToStatus = domain.ReservationStatus(to.String)
		h.ChangedBy = by.String
		h.Reason = reason.String
		out = append(out, h)
	}
	return out, rows.Err()
}

// ---- outbound dispatch bookkeeping ----

func (r *Repo) ListUndispatched(ctx context.Context, limit int) ([]domain.ConsultationMessage, error) {
	rows, err := r.db.QueryContext(ctx, listUndispatchedSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ConsultationMessage
	for rows.Next() {
		var m domain.ConsultationMessage
		var sender string
		var dispatched sql.NullTime
		if err := rows.Scan(&m.ID, &m.UserID, &m.HospitalID, &sender, &m.Content, &m.CreatedAt, &dispatched); err != nil {
			return nil, err
		}
		m.SenderType = domain.SenderType(sender)
		if dispatched.Valid {
			t := dispatched.Time
			m.DispatchedAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) MarkDispatched(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, markDispatchedSQL, id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanReservation(s scanner) (domain.Reservation, error) {
	var res domain.Reservation
	var category, status string
	var date time.Time
	var metaRaw []byte
	err := s.Scan(
		&res.ID,
		&res.HospitalID,
		&res.UserID,
		&category,
		&res.ProcedureName,
		&date,
		&res.ReservationTime,
		&res.DepositAmount,
		&res.Currency,
		&res.PaymentDeadline,
		&status,
		&metaRaw,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Category = domain.ReservationCategory(category)
	res.Status = domain.ReservationStatus(status)
	res.ReservationDate = date
	if len(metaRaw) > 0 {
		if err := json.Unmarshal(metaRaw, &res.Meta); err != nil {
			return domain.Reservation{}, err
		}
	}
	return res, nil
}
