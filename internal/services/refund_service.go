package services

import (
	"context"
	"database/sql"
	"fmt"

	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
	"toursbackend/internal/repositories"
	"toursbackend/internal/utils"
)

type RefundService struct {
	DB        *sql.DB
	RequestID string
}

func (s RefundService) refunds() repositories.RefundRepository {
	return repositories.RefundRepository{DB: dbtx(resolveDB(s.DB))}
}

func (s RefundService) payments() repositories.PaymentRepository {
	return repositories.PaymentRepository{DB: dbtx(resolveDB(s.DB))}
}

// CreateRefund files a PENDING refund request against an accessible payment.
func (s RefundService) CreateRefund(ctx context.Context, caller domain.Caller, in models.RefundInput) (models.Refund, error) {
	paymentID := utils.TrimOrEmpty(in.PaymentID)
	reason := utils.NormalizeSpace(in.Reason)

	var errs domain.ValidationErrors
	if paymentID == "" {
		errs = append(errs, domain.ValidationError{Field: "payment", Msg: "this field is required"})
	}
	if err := utils.ValidateAmount("amount", in.Amount); err != nil {
		errs = append(errs, domain.AsValidationErrors(err)...)
	}
	if reason == "" {
		errs = append(errs, domain.ValidationError{Field: "reason", Msg: "this field may not be blank"})
	}
	if len(errs) > 0 {
		return models.Refund{}, errs
	}

	payment, err := s.payments().GetByID(ctx, paymentID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Refund{}, domain.ValidationError{Field: "payment", Msg: fmt.Sprintf("invalid pk %q - object does not exist", paymentID), Err: err}
		}
		return models.Refund{}, persistence("load payment", err)
	}
	if !caller.CanAccess(payment.OwnerID) {
		return models.Refund{}, domain.AuthorizationError{Msg: "you are not allowed to refund this payment"}
	}

	now := utils.NowUTC()
	rf := models.Refund{
		ID:        utils.NewID(),
		PaymentID: payment.ID,
		Amount:    in.Amount,
		Reason:    reason,
		Status:    models.RefundPending,
		CreatedAt: now,
		UpdatedAt: now,
		OwnerID:   payment.OwnerID,
	}
	if err := s.refunds().Create(ctx, rf); err != nil {
		return models.Refund{}, persistence("create refund", err)
	}

	utils.LogEvent(s.RequestID, "refund", "create", fmt.Sprintf("refund_id=%s payment_id=%s", rf.ID, rf.PaymentID))
	return rf, nil
}

func (s RefundService) ListRefunds(ctx context.Context, caller domain.Caller, page domain.Pagination) ([]models.Refund, domain.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.refunds().List(ctx, caller.Scope(), page)
	if err != nil {
		return nil, page, persistence("list refunds", err)
	}
	page.Total = total
	return items, page, nil
}

func (s RefundService) GetRefund(ctx context.Context, caller domain.Caller, id string) (models.Refund, error) {
	rf, err := s.refunds().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Refund{}, persistence("get refund", err)
	}
	if !caller.CanAccess(rf.OwnerID) {
		return models.Refund{}, domain.NotFoundError{Resource: "refund"}
	}
	return rf, nil
}

// UpdateRefund edits amount and/or reason of a PENDING refund in the
// caller's scope.
func (s RefundService) UpdateRefund(ctx context.Context, caller domain.Caller, id string, in models.RefundUpdateInput) (models.Refund, error) {
	var errs domain.ValidationErrors
	if in.Amount != nil {
		if err := utils.ValidateAmount("amount", *in.Amount); err != nil {
			errs = append(errs, domain.AsValidationErrors(err)...)
		}
	}
	var reason string
	if in.Reason != nil {
		reason = utils.NormalizeSpace(*in.Reason)
		if reason == "" {
			errs = append(errs, domain.ValidationError{Field: "reason", Msg: "this field may not be blank"})
		}
	}
	if len(errs) > 0 {
		return models.Refund{}, errs
	}

	rf, err := s.GetRefund(ctx, caller, id)
	if err != nil {
		return models.Refund{}, err
	}
	if rf.Status != models.RefundPending {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("already %s", rf.Status)}
	}
	if in.Amount != nil {
		rf.Amount = *in.Amount
	}
	if in.Reason != nil {
		rf.Reason = reason
	}
	rf.UpdatedAt = utils.NowUTC()

	ok, err := s.refunds().UpdatePending(ctx, rf)
	if err != nil {
		return models.Refund{}, persistence("update refund", err)
	}
	if !ok {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "already resolved"}
	}

	utils.LogEvent(s.RequestID, "refund", "update", fmt.Sprintf("refund_id=%s", rf.ID))
	return rf, nil
}

// DeleteRefund withdraws a refund in the caller's scope. Only admins may
// delete a resolved one.
func (s RefundService) DeleteRefund(ctx context.Context, caller domain.Caller, id string) error {
	rf, err := s.GetRefund(ctx, caller, id)
	if err != nil {
		return err
	}
	if rf.Status != models.RefundPending && !caller.IsAdmin {
		return domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("already %s", rf.Status)}
	}
	if err := s.refunds().Delete(ctx, rf.ID); err != nil {
		return persistence("delete refund", err)
	}

	utils.LogEvent(s.RequestID, "refund", "delete", fmt.Sprintf("refund_id=%s", rf.ID))
	return nil
}

// ResolveRefund is an admin operation moving a PENDING refund to PROCESSED or
// REJECTED. processed_at is assigned here and nowhere else.
func (s RefundService) ResolveRefund(ctx context.Context, caller domain.Caller, id string, status models.RefundStatus) (models.Refund, error) {
	if err := caller.RequireAdmin(); err != nil {
		return models.Refund{}, err
	}
	if status != models.RefundProcessed && status != models.RefundRejected {
		return models.Refund{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("%q is not a valid choice", status)}
	}

	rf, err := s.refunds().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Refund{}, persistence("get refund", err)
	}
	if rf.Status != models.RefundPending {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: fmt.Sprintf("already %s", rf.Status)}
	}

	now := utils.NowUTC()
	ok, err := s.refunds().Resolve(ctx, rf.ID, status, now)
	if err != nil {
		return models.Refund{}, persistence("resolve refund", err)
	}
	if !ok {
		return models.Refund{}, domain.ConflictError{Resource: "refund", Msg: "already resolved"}
	}
	rf.Status = status
	rf.ProcessedAt = &now
	rf.UpdatedAt = now

	utils.LogEvent(s.RequestID, "refund", "resolve", fmt.Sprintf("refund_id=%s status=%s", rf.ID, status))
	return rf, nil
}
