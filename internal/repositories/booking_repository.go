package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
)

type BookingRepository struct {
	DB intdb.DBTX
}

const bookingColumns = `b.id, b.user_id, b.tour_id, b.package_id, b.travelers_count, b.total_price,
	b.status, b.booking_date, b.special_requests, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b         models.Booking
		packageID sql.NullString
	)
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.TourID,
		&packageID,
		&b.TravelersCount,
		&b.TotalPrice,
		&b.Status,
		&b.BookingDate,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	if packageID.Valid {
		b.PackageID = &packageID.String
	}
	return b, nil
}

func (r BookingRepository) Create(ctx context.Context, b models.Booking) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	var packageID any
	if b.PackageID != nil {
		packageID = *b.PackageID
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO bookings (id, user_id, tour_id, package_id, travelers_count, total_price,
			status, booking_date, special_requests, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.TourID, packageID, b.TravelersCount, b.TotalPrice,
		b.Status, b.BookingDate, b.SpecialRequests, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r BookingRepository) GetForUpdate(ctx context.Context, id string) (models.Booking, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r BookingRepository) get(ctx context.Context, id, suffix string) (models.Booking, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Booking{}, err
	}
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ? LIMIT 1`+suffix, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// List returns bookings in scope, newest first, plus the total count.
func (r BookingRepository) List(ctx context.Context, scope domain.Scope, page domain.Pagination) ([]models.Booking, int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, 0, err
	}
	where, args := ownerClause(scope)

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings b`+where+` ORDER BY b.created_at DESC LIMIT ? OFFSET ?`,
		pageArgs(args, page)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// UpdateStatus sets status and touches updated_at.
func (r BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, at time.Time) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
	return err
}
