package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
	"toursbackend/internal/repositories"
	"toursbackend/internal/utils"
)

type InvoiceService struct {
	DB        *sql.DB
	RequestID string
	Docs      DocsService

	// NewNumber overrides invoice number generation (tests).
	NewNumber func(time.Time) string
}

func (s InvoiceService) invoiceNumber(now time.Time) string {
	if s.NewNumber != nil {
		return s.NewNumber(now)
	}
	return utils.NewInvoiceNumber(now)
}

func (s InvoiceService) invoices() repositories.InvoiceRepository {
	return repositories.InvoiceRepository{DB: dbtx(resolveDB(s.DB))}
}

func (s InvoiceService) bookings() repositories.BookingRepository {
	return repositories.BookingRepository{DB: dbtx(resolveDB(s.DB))}
}

// CreateInvoice issues an UNPAID invoice with a generated number for a booking
// the caller may access.
func (s InvoiceService) CreateInvoice(ctx context.Context, caller domain.Caller, in models.InvoiceInput) (models.Invoice, error) {
	bookingID := utils.TrimOrEmpty(in.BookingID)

	var errs domain.ValidationErrors
	if bookingID == "" {
		errs = append(errs, domain.ValidationError{Field: "booking", Msg: "this field is required"})
	}
	if err := utils.ValidateAmount("amount", in.Amount); err != nil {
		errs = append(errs, domain.AsValidationErrors(err)...)
	}
	due, err := utils.ParseDate(in.DueDate)
	if err != nil {
		errs = append(errs, domain.ValidationError{Field: "due_date", Msg: "date has wrong format, use YYYY-MM-DD", Err: err})
	}
	if len(errs) > 0 {
		return models.Invoice{}, errs
	}

	booking, err := s.bookings().GetByID(ctx, bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Invoice{}, domain.ValidationError{Field: "booking", Msg: fmt.Sprintf("invalid pk %q - object does not exist", bookingID), Err: err}
		}
		return models.Invoice{}, persistence("load booking", err)
	}
	if !caller.CanAccess(booking.UserID) {
		return models.Invoice{}, domain.AuthorizationError{Msg: "you are not allowed to invoice this booking"}
	}

	now := utils.NowUTC()
	inv := models.Invoice{
		ID:            utils.NewID(),
		BookingID:     booking.ID,
		InvoiceNumber: s.invoiceNumber(now),
		Amount:        in.Amount,
		Status:        models.InvoiceUnpaid,
		DueDate:       models.NewDate(due),
		CreatedDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
		OwnerID:       booking.UserID,
	}
	err = s.invoices().Create(ctx, inv)
	if intdb.IsDuplicateKey(err) {
		// invoice_number is the only unique column a fresh row can hit
		inv.InvoiceNumber = s.invoiceNumber(now)
		err = s.invoices().Create(ctx, inv)
		if intdb.IsDuplicateKey(err) {
			return models.Invoice{}, domain.ConflictError{Resource: "invoice", Msg: "invoice number already in use", Err: err}
		}
	}
	if err != nil {
		return models.Invoice{}, persistence("create invoice", err)
	}

	utils.LogEvent(s.RequestID, "invoice", "create", fmt.Sprintf("invoice=%s booking_id=%s", inv.InvoiceNumber, inv.BookingID))
	return inv, nil
}

func (s InvoiceService) ListInvoices(ctx context.Context, caller domain.Caller, page domain.Pagination) ([]models.Invoice, domain.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.invoices().List(ctx, caller.Scope(), page)
	if err != nil {
		return nil, page, persistence("list invoices", err)
	}
	page.Total = total
	return items, page, nil
}

func (s InvoiceService) GetInvoice(ctx context.Context, caller domain.Caller, id string) (models.Invoice, error) {
	inv, err := s.invoices().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Invoice{}, persistence("get invoice", err)
	}
	if !caller.CanAccess(inv.OwnerID) {
		return models.Invoice{}, domain.NotFoundError{Resource: "invoice"}
	}
	return inv, nil
}

// UpdateInvoiceStatus is an admin operation.
func (s InvoiceService) UpdateInvoiceStatus(ctx context.Context, caller domain.Caller, id string, status models.InvoiceStatus) (models.Invoice, error) {
	if err := caller.RequireAdmin(); err != nil {
		return models.Invoice{}, err
	}
	if !status.Valid() {
		return models.Invoice{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("%q is not a valid choice", status)}
	}

	inv, err := s.invoices().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Invoice{}, persistence("get invoice", err)
	}

	now := utils.NowUTC()
	if err := s.invoices().UpdateStatus(ctx, inv.ID, status, now); err != nil {
		return models.Invoice{}, persistence("update invoice", err)
	}
	inv.Status = status
	inv.UpdatedAt = now

	utils.LogEvent(s.RequestID, "invoice", "update_status", fmt.Sprintf("invoice=%s status=%s", inv.InvoiceNumber, status))
	return inv, nil
}

// UpdateInvoice changes amount and/or due date of an invoice in the caller's
// scope.
func (s InvoiceService) UpdateInvoice(ctx context.Context, caller domain.Caller, id string, in models.InvoiceUpdateInput) (models.Invoice, error) {
	var errs domain.ValidationErrors
	if in.Amount != nil {
		if err := utils.ValidateAmount("amount", *in.Amount); err != nil {
			errs = append(errs, domain.AsValidationErrors(err)...)
		}
	}
	var due time.Time
	if in.DueDate != nil {
		d, err := utils.ParseDate(*in.DueDate)
		if err != nil {
			errs = append(errs, domain.ValidationError{Field: "due_date", Msg: "date has wrong format, use YYYY-MM-DD", Err: err})
		}
		due = d
	}
	if len(errs) > 0 {
		return models.Invoice{}, errs
	}

	inv, err := s.GetInvoice(ctx, caller, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if in.Amount != nil {
		inv.Amount = *in.Amount
	}
	if in.DueDate != nil {
		inv.DueDate = models.NewDate(due)
	}
	inv.UpdatedAt = utils.NowUTC()

	if err := s.invoices().Update(ctx, inv); err != nil {
		return models.Invoice{}, persistence("update invoice", err)
	}

	utils.LogEvent(s.RequestID, "invoice", "update", fmt.Sprintf("invoice=%s", inv.InvoiceNumber))
	return inv, nil
}

// DeleteInvoice removes an invoice in the caller's scope.
func (s InvoiceService) DeleteInvoice(ctx context.Context, caller domain.Caller, id string) error {
	inv, err := s.GetInvoice(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.invoices().Delete(ctx, inv.ID); err != nil {
		return persistence("delete invoice", err)
	}

	utils.LogEvent(s.RequestID, "invoice", "delete", fmt.Sprintf("invoice=%s", inv.InvoiceNumber))
	return nil
}

// RenderInvoicePDF returns the invoice document and its file name.
func (s InvoiceService) RenderInvoicePDF(ctx context.Context, caller domain.Caller, id string) ([]byte, string, error) {
	inv, err := s.GetInvoice(ctx, caller, id)
	if err != nil {
		return nil, "", err
	}
	booking, err := s.bookings().GetByID(ctx, inv.BookingID)
	if err != nil {
		return nil, "", persistence("load booking", err)
	}

	docs := s.Docs
	docs.RequestID = s.RequestID
	pdf, name, err := docs.GenerateInvoice(inv, booking)
	if err != nil {
		return nil, "", domain.PersistenceError{Op: "render invoice", Err: err}
	}
	return pdf, name, nil
}
