package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
)

type PaymentRepository struct {
	DB intdb.DBTX
}

const paymentColumns = `p.id, p.booking_id, p.amount, p.payment_method, p.status, p.transaction_id,
	p.payment_date, p.created_at, p.updated_at, b.user_id`

const paymentFrom = ` FROM payments p JOIN bookings b ON b.id = p.booking_id`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var (
		p     models.Payment
		txnID sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&txnID,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.OwnerID,
	); err != nil {
		return models.Payment{}, err
	}
	p.TransactionID = txnID.String
	return p, nil
}

func (r PaymentRepository) Create(ctx context.Context, p models.Payment) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO payments (id, booking_id, amount, payment_method, status, transaction_id,
			payment_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BookingID, p.Amount, p.Method, p.Status, intdb.NullIfEmpty(p.TransactionID),
		p.PaymentDate, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r PaymentRepository) GetByID(ctx context.Context, id string) (models.Payment, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Payment{}, err
	}
	p, err := scanPayment(db.QueryRowContext(ctx, `SELECT `+paymentColumns+paymentFrom+` WHERE p.id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) List(ctx context.Context, scope domain.Scope, page domain.Pagination) ([]models.Payment, int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, 0, err
	}
	where, args := ownerClause(scope)

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)`+paymentFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+paymentColumns+paymentFrom+where+` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`,
		pageArgs(args, page)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// CountByStatus counts the booking's payments in the given status.
func (r PaymentRepository) CountByStatus(ctx context.Context, bookingID string, status models.PaymentStatus) (int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE booking_id = ? AND status = ?`, bookingID, status).Scan(&n)
	return n, err
}
