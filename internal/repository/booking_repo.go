package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/timeutil"
)

const (
	pqSerializationFailure = "40001"
	pqExclusionViolation   = "23P01"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `
	b.id, b.user_id, b.facility_id, b.date,
	to_char(b.start_time, 'HH24:MI'), to_char(b.end_time, 'HH24:MI'),
	b.status, COALESCE(b.purpose, ''), b.attendees, COALESCE(b.admin_notes, ''),
	b.created_at, b.updated_at,
	u.name, u.email, COALESCE(u.phone, ''), f.name`

const bookingJoins = `
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN facilities f ON f.id = b.facility_id`

func scanBooking(row interface{ Scan(...any) error }) (*db.Booking, error) {
	var b db.Booking
	var start, end string
	err := row.Scan(
		&b.ID, &b.UserID, &b.FacilityID, &b.Date,
		&start, &end,
		&b.Status, &b.Purpose, &b.Attendees, &b.AdminNotes,
		&b.CreatedAt, &b.UpdatedAt,
		&b.UserName, &b.UserEmail, &b.UserPhone, &b.FacilityName,
	)
	if err != nil {
		return nil, err
	}
	if b.StartTime, err = timeutil.ParseClock(start); err != nil {
		return nil, fmt.Errorf("corrupt start_time for booking %d: %w", b.ID, err)
	}
	if b.EndTime, err = timeutil.ParseClock(end); err != nil {
		return nil, fmt.Errorf("corrupt end_time for booking %d: %w", b.ID, err)
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]db.Booking, error) {
	defer rows.Close()
	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// CreateBooking inserts the booking atomically with a conflict re-check. The
// check and the insert share a serializable transaction so two concurrent
// requests for overlapping intervals cannot both observe "no conflict"; a
// serialization failure is retried once before being reported as a conflict.
func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	err := r.createOnce(b)
	if isRetryable(err) {
		err = r.createOnce(b)
	}
	return mapWriteError(err)
}

func (r *BookingRepository) createOnce(b *db.Booking) error {
	tx, err := r.DB.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	taken, err := hasConflictTx(tx, b.FacilityID, b.Date, b.Interval(), nil)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("facility is already booked during the requested time")
	}

	query := `
		INSERT INTO bookings (user_id, facility_id, date, start_time, end_time, status, purpose, attendees, admin_notes)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		b.UserID, b.FacilityID, b.Date,
		b.StartTime.String(), b.EndTime.String(),
		b.Status, nullIfEmpty(b.Purpose), b.Attendees, nullIfEmpty(b.AdminNotes),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateBooking persists field changes. When the interval or date moved, the
// conflict check runs again inside the same serializable transaction,
// excluding the booking's own id.
func (r *BookingRepository) UpdateBooking(b *db.Booking, recheckConflict bool) error {
	err := r.updateOnce(b, recheckConflict)
	if isRetryable(err) {
		err = r.updateOnce(b, recheckConflict)
	}
	return mapWriteError(err)
}

func (r *BookingRepository) updateOnce(b *db.Booking, recheckConflict bool) error {
	tx, err := r.DB.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if recheckConflict {
		taken, err := hasConflictTx(tx, b.FacilityID, b.Date, b.Interval(), &b.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("facility is already booked during the requested time")
		}
	}

	query := `
		UPDATE bookings
		SET date = $2, start_time = $3::time, end_time = $4::time, status = $5,
		    purpose = $6, attendees = $7, admin_notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err = tx.QueryRow(query,
		b.ID, b.Date, b.StartTime.String(), b.EndTime.String(), b.Status,
		nullIfEmpty(b.Purpose), b.Attendees, nullIfEmpty(b.AdminNotes),
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("booking %d not found", b.ID)
		}
		return err
	}
	return tx.Commit()
}

func hasConflictTx(tx *sql.Tx, facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE facility_id = $1
			  AND date = $2
			  AND status IN ('confirmed', 'pending')
			  AND start_time < $4::time
			  AND end_time > $3::time
			  AND ($5::bigint IS NULL OR id <> $5)
		)`
	var taken bool
	err := tx.QueryRow(query, facilityID, date, iv.Start.String(), iv.End.String(), excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("error checking booking conflicts: %w", err)
	}
	return taken, nil
}

// FindConflicts returns every active booking overlapping the interval on the
// given facility and date. excludeID omits a booking from consideration so
// an update is never compared against itself.
func (r *BookingRepository) FindConflicts(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.facility_id = $1
		  AND b.date = $2
		  AND b.status IN ('confirmed', 'pending')
		  AND b.start_time < $4::time
		  AND b.end_time > $3::time
		  AND ($5::bigint IS NULL OR b.id <> $5)
		ORDER BY b.start_time`
	rows, err := r.DB.Query(query, facilityID, date, iv.Start.String(), iv.End.String(), excludeID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking conflicts: %w", err)
	}
	return collectBookings(rows)
}

// FindBookedOnDate returns the facility's active bookings for a date,
// ordered by start time, for availability overlays.
func (r *BookingRepository) FindBookedOnDate(facilityID int64, date time.Time) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.facility_id = $1
		  AND b.date = $2
		  AND b.status IN ('confirmed', 'pending')
		ORDER BY b.start_time`
	rows, err := r.DB.Query(query, facilityID, date)
	if err != nil {
		return nil, fmt.Errorf("error querying booked slots: %w", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) FindByID(id int64) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE b.id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking %d not found", id)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByUser(userID int64) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) FindAll() ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` ORDER BY b.created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	return collectBookings(rows)
}

// FindConfirmedOnDate returns confirmed bookings on a date across all
// facilities, for the reminder job.
func (r *BookingRepository) FindConfirmedOnDate(date time.Time) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.date = $1 AND b.status = 'confirmed'
		ORDER BY b.start_time`
	rows, err := r.DB.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings: %w", err)
	}
	return collectBookings(rows)
}

// AggregateStats computes booking counts for one user, or for all bookings
// when userID is nil. An empty scope yields all zeros.
func (r *BookingRepository) AggregateStats(userID *int64, today time.Time) (entities.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending'   THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'confirmed' AND date >= $2 THEN 1 ELSE 0 END), 0)
		FROM bookings
		WHERE ($1::bigint IS NULL OR user_id = $1)`
	var stats entities.Stats
	err := r.DB.QueryRow(query, userID, today).Scan(
		&stats.Total, &stats.Confirmed, &stats.Pending, &stats.Cancelled, &stats.Upcoming,
	)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("error aggregating booking stats: %w", err)
	}
	return stats, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure
}

// mapWriteError surfaces the schema's overlap exclusion constraint and an
// unresolved serialization failure as conflict errors.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return apperr.Conflict("facility is already booked during the requested time")
		case pqSerializationFailure:
			return apperr.Conflict("booking collided with a concurrent request, please retry")
		}
	}
	return err
}
