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

type RefundRepository struct {
	DB intdb.DBTX
}

const refundColumns = `r.id, r.payment_id, r.amount, r.reason, r.status, r.processed_at,
	r.created_at, r.updated_at, b.user_id`

const refundFrom = ` FROM refunds r JOIN payments p ON p.id = r.payment_id JOIN bookings b ON b.id = p.booking_id`

func scanRefund(row interface{ Scan(...any) error }) (models.Refund, error) {
	var (
		rf        models.Refund
		processed sql.NullTime
	)
	if err := row.Scan(
		&rf.ID,
		&rf.PaymentID,
		&rf.Amount,
		&rf.Reason,
		&rf.Status,
		&processed,
		&rf.CreatedAt,
		&rf.UpdatedAt,
		&rf.OwnerID,
	); err != nil {
		return models.Refund{}, err
	}
	if processed.Valid {
		rf.ProcessedAt = &processed.Time
	}
	return rf, nil
}

func (r RefundRepository) Create(ctx context.Context, rf models.Refund) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO refunds (id, payment_id, amount, reason, status, processed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		rf.ID, rf.PaymentID, rf.Amount, rf.Reason, rf.Status, rf.CreatedAt, rf.UpdatedAt,
	)
	return err
}

func (r RefundRepository) GetByID(ctx context.Context, id string) (models.Refund, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Refund{}, err
	}
	rf, err := scanRefund(db.QueryRowContext(ctx, `SELECT `+refundColumns+refundFrom+` WHERE r.id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Refund{}, domain.NotFoundError{Resource: "refund", Err: err}
		}
		return models.Refund{}, err
	}
	return rf, nil
}

func (r RefundRepository) List(ctx context.Context, scope domain.Scope, page domain.Pagination) ([]models.Refund, int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, 0, err
	}
	where, args := ownerClause(scope)

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)`+refundFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+refundColumns+refundFrom+where+` ORDER BY r.created_at DESC LIMIT ? OFFSET ?`,
		pageArgs(args, page)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Refund{}
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rf)
	}
	return out, total, rows.Err()
}

// Resolve moves a PENDING refund to status and stamps processed_at. It
// reports false when the refund was no longer pending.
func (r RefundRepository) Resolve(ctx context.Context, id string, status models.RefundStatus, at time.Time) (bool, error) {
	db, err := conn(r.DB)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE refunds SET status = ?, processed_at = ?, updated_at = ? WHERE id = ? AND status = ?`,
		status, at, at, id, models.RefundPending,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdatePending rewrites amount and reason while the refund is still PENDING.
// It reports false when the refund was already resolved.
func (r RefundRepository) UpdatePending(ctx context.Context, rf models.Refund) (bool, error) {
	db, err := conn(r.DB)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE refunds SET amount = ?, reason = ?, updated_at = ? WHERE id = ? AND status = ?`,
		rf.Amount, rf.Reason, rf.UpdatedAt, rf.ID, models.RefundPending,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r RefundRepository) Delete(ctx context.Context, id string) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM refunds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "refund"}
	}
	return nil
}
