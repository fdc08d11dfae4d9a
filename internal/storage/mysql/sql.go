package mysql

const upsertHospitalSQL = `
INSERT INTO hospitals
  (id, name)
VALUES
  (?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  updated_at = CURRENT_TIMESTAMP
`

const upsertUserSQL = `
INSERT INTO users
  (id, display_name, name)
VALUES
  (?, ?, ?)
ON DUPLICATE KEY UPDATE
  display_name = VALUES(display_name),
  name         = VALUES(name)
`

const findHospitalSQL = `
SELECT id, name
FROM hospitals
WHERE id = ?
`

const findUserSQL = `
SELECT id, display_name, name
FROM users
WHERE id = ?
`

const insertReservationSQL = `
INSERT INTO reservations
  (hospital_id, user_id, category, procedure_name, reservation_date,
   reservation_time, deposit_amount, currency, payment_deadline, status, meta)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertStatusHistorySQL = `
INSERT INTO reservation_status_history
  (reservation_id, from_status, to_status, changed_by, reason)
VALUES
  (?, ?, ?, ?, ?)
`

const insertMessageSQL = `
INSERT INTO consultation_messages
  (user_id, hospital_id, sender_type, content)
VALUES
  (?, ?, ?, ?)
`

// Read back DB-generated times after an insert.
const reservationTimesSQL = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
const historyTimeSQL = `SELECT created_at FROM reservation_status_history WHERE id = ?`
const messageTimeSQL = `SELECT created_at FROM consultation_messages WHERE id = ?`

const getReservationSQL = `
SELECT id, hospital_id, user_id, category, procedure_name, reservation_date,
       reservation_time, deposit_amount, currency, payment_deadline, status,
       meta, created_at, updated_at
FROM reservations
WHERE id = ?
`

const listReservationsSQL = `
SELECT id, hospital_id, user_id, category, procedure_name, reservation_date,
       reservation_time, deposit_amount, currency, payment_deadline, status,
       meta, created_at, updated_at
FROM reservations
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const listStatusHistorySQL = `
SELECT id, reservation_id, from_status, to_status, changed_by, reason, created_at
FROM reservation_status_history
WHERE reservation_id = ?
ORDER BY created_at ASC, id ASC
`

const listUndispatchedSQL = `
SELECT id, user_id, hospital_id, sender_type, content, created_at, dispatched_at
FROM consultation_messages
WHERE dispatched_at IS NULL
ORDER BY id ASC
LIMIT ?
`

const markDispatchedSQL = `
UPDATE consultation_messages
SET dispatched_at = CURRENT_TIMESTAMP
WHERE id = ? AND dispatched_at IS NULL
`
