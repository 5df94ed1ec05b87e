package services

import (
	"context"
	"database/sql"
	"fmt"

	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
	"toursbackend/internal/repositories"
	"toursbackend/internal/utils"
)

// PaymentService settles payments against a simulated gateway and confirms
// the booking in the same transaction.
type PaymentService struct {
	DB        *sql.DB
	RequestID string

	// SingleSuccess rejects a payment when the booking already has a
	// successful one.
	SingleSuccess bool

	// NewTxnID overrides transaction id generation (tests).
	NewTxnID func() string
}

func (s PaymentService) payments() repositories.PaymentRepository {
	return repositories.PaymentRepository{DB: dbtx(resolveDB(s.DB))}
}

func (s PaymentService) txnID() string {
	if s.NewTxnID != nil {
		return s.NewTxnID()
	}
	return utils.NewTransactionID()
}

func validatePaymentInput(in models.PaymentInput) (models.PaymentInput, error) {
	in.BookingID = utils.TrimOrEmpty(in.BookingID)
	if in.Method == "" {
		in.Method = models.MethodUPI
	}

	var errs domain.ValidationErrors
	if in.BookingID == "" {
		errs = append(errs, domain.ValidationError{Field: "booking", Msg: "this field is required"})
	}
	if err := utils.ValidateAmount("amount", in.Amount); err != nil {
		errs = append(errs, domain.AsValidationErrors(err)...)
	}
	if !in.Method.Valid() {
		errs = append(errs, domain.ValidationError{Field: "payment_method", Msg: fmt.Sprintf("%q is not a valid choice", in.Method)})
	}
	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// ProcessPayment records a SUCCESS payment with a fresh transaction id and
// moves the booking to CONFIRMED. Both writes commit together or not at all.
func (s PaymentService) ProcessPayment(ctx context.Context, caller domain.Caller, in models.PaymentInput) (models.Payment, error) {
	in, err := validatePaymentInput(in)
	if err != nil {
		return models.Payment{}, err
	}

	var payment models.Payment
	err = intdb.WithTx(ctx, resolveDB(s.DB), func(tx *sql.Tx) error {
		booking, err := repositories.BookingRepository{DB: tx}.GetForUpdate(ctx, in.BookingID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "booking", Msg: fmt.Sprintf("invalid pk %q - object does not exist", in.BookingID), Err: err}
			}
			return persistence("load booking", err)
		}
		if !caller.CanAccess(booking.UserID) {
			return domain.AuthorizationError{Msg: "you are not allowed to pay for this booking"}
		}

		payments := repositories.PaymentRepository{DB: tx}
		if s.SingleSuccess {
			n, err := payments.CountByStatus(ctx, booking.ID, models.PaymentSuccess)
			if err != nil {
				return persistence("count payments", err)
			}
			if n > 0 {
				return domain.ConflictError{Resource: "payment", Msg: "booking already has a successful payment"}
			}
		}

		now := utils.NowUTC()
		payment = models.Payment{
			ID:            utils.NewID(),
			BookingID:     booking.ID,
			Amount:        in.Amount,
			Method:        in.Method,
			Status:        models.PaymentSuccess,
			TransactionID: s.txnID(),
			PaymentDate:   now,
			CreatedAt:     now,
			UpdatedAt:     now,
			OwnerID:       booking.UserID,
		}
		err = payments.Create(ctx, payment)
		if intdb.IsDuplicateKey(err) {
			// transaction_id collision; MySQL keeps the tx usable after 1062
			payment.TransactionID = s.txnID()
			err = payments.Create(ctx, payment)
			if intdb.IsDuplicateKey(err) {
				return domain.ConflictError{Resource: "payment", Msg: "transaction id already in use", Err: err}
			}
		}
		if err != nil {
			return persistence("create payment", err)
		}

		return BookingService{RequestID: s.RequestID}.confirmBooking(ctx, tx, booking.ID)
	})
	if err != nil {
		err = persistence("process payment", err)
		if domain.IsPersistence(err) {
			utils.LogError(s.RequestID, "payment", "process", err)
		}
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "process", fmt.Sprintf("payment_id=%s booking_id=%s txn=%s", payment.ID, payment.BookingID, payment.TransactionID))
	return payment, nil
}

func (s PaymentService) ListPayments(ctx context.Context, caller domain.Caller, page domain.Pagination) ([]models.Payment, domain.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.payments().List(ctx, caller.Scope(), page)
	if err != nil {
		return nil, page, persistence("list payments", err)
	}
	page.Total = total
	return items, page, nil
}

func (s PaymentService) GetPayment(ctx context.Context, caller domain.Caller, id string) (models.Payment, error) {
	p, err := s.payments().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Payment{}, persistence("get payment", err)
	}
	if !caller.CanAccess(p.OwnerID) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return p, nil
}
