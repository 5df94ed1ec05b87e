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

type InvoiceRepository struct {
	DB intdb.DBTX
}

const invoiceColumns = `i.id, i.booking_id, i.invoice_number, i.amount, i.status, i.due_date,
	i.created_date, i.created_at, i.updated_at, b.user_id`

const invoiceFrom = ` FROM invoices i JOIN bookings b ON b.id = i.booking_id`

func scanInvoice(row interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.BookingID,
		&inv.InvoiceNumber,
		&inv.Amount,
		&inv.Status,
		&inv.DueDate,
		&inv.CreatedDate,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.OwnerID,
	)
	return inv, err
}

func (r InvoiceRepository) Create(ctx context.Context, inv models.Invoice) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO invoices (id, booking_id, invoice_number, amount, status, due_date,
			created_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BookingID, inv.InvoiceNumber, inv.Amount, inv.Status, inv.DueDate,
		inv.CreatedDate, inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (r InvoiceRepository) GetByID(ctx context.Context, id string) (models.Invoice, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Invoice{}, err
	}
	inv, err := scanInvoice(db.QueryRowContext(ctx, `SELECT `+invoiceColumns+invoiceFrom+` WHERE i.id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, domain.NotFoundError{Resource: "invoice", Err: err}
		}
		return models.Invoice{}, err
	}
	return inv, nil
}

func (r InvoiceRepository) List(ctx context.Context, scope domain.Scope, page domain.Pagination) ([]models.Invoice, int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, 0, err
	}
	where, args := ownerClause(scope)

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)`+invoiceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+invoiceColumns+invoiceFrom+where+` ORDER BY i.created_at DESC LIMIT ? OFFSET ?`,
		pageArgs(args, page)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (r InvoiceRepository) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus, at time.Time) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE invoices SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
	return err
}

// Update rewrites the editable columns of inv.
func (r InvoiceRepository) Update(ctx context.Context, inv models.Invoice) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`UPDATE invoices SET amount = ?, due_date = ?, updated_at = ? WHERE id = ?`,
		inv.Amount, inv.DueDate, inv.UpdatedAt, inv.ID,
	)
	return err
}

func (r InvoiceRepository) Delete(ctx context.Context, id string) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "invoice"}
	}
	return nil
}
