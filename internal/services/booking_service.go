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

type BookingService struct {
	DB        *sql.DB
	RequestID string
}

func (s BookingService) bookings() repositories.BookingRepository {
	return repositories.BookingRepository{DB: dbtx(resolveDB(s.DB))}
}

func (s BookingService) catalog() repositories.CatalogRepository {
	return repositories.CatalogRepository{DB: dbtx(resolveDB(s.DB))}
}

// CreateBooking prices and stores a PENDING booking owned by caller.
func (s BookingService) CreateBooking(ctx context.Context, caller domain.Caller, in models.BookingInput) (models.Booking, error) {
	tourID := utils.TrimOrEmpty(in.TourID)
	packageID := utils.OptionalID(in.PackageID)

	var errs domain.ValidationErrors
	if tourID == "" {
		errs = append(errs, domain.ValidationError{Field: "tour", Msg: "this field is required"})
	}
	if in.TravelersCount < 1 {
		errs = append(errs, domain.ValidationError{Field: "travelers_count", Msg: "must be at least 1"})
	}
	if len(errs) > 0 {
		return models.Booking{}, errs
	}

	tour, err := s.catalog().GetTour(ctx, tourID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, domain.ValidationError{Field: "tour", Msg: fmt.Sprintf("invalid pk %q - object does not exist", tourID), Err: err}
		}
		return models.Booking{}, persistence("load tour", err)
	}

	var modifier *models.Money
	if packageID != nil {
		pkg, err := s.catalog().GetPackage(ctx, *packageID)
		if err != nil {
			if domain.IsNotFound(err) {
				return models.Booking{}, domain.ValidationError{Field: "package", Msg: fmt.Sprintf("invalid pk %q - object does not exist", *packageID), Err: err}
			}
			return models.Booking{}, persistence("load package", err)
		}
		if pkg.TourID != tour.ID {
			return models.Booking{}, domain.ValidationError{Field: "package", Msg: "package does not belong to the selected tour"}
		}
		modifier = &pkg.PriceModifier
	}

	total, err := utils.ComputeTotalPrice(tour.BasePrice, modifier, in.TravelersCount)
	if err != nil {
		return models.Booking{}, err
	}

	now := utils.NowUTC()
	b := models.Booking{
		ID:              utils.NewID(),
		UserID:          caller.ID,
		TourID:          tour.ID,
		PackageID:       packageID,
		TravelersCount:  in.TravelersCount,
		TotalPrice:      total,
		Status:          models.BookingPending,
		BookingDate:     now,
		SpecialRequests: utils.TrimOrEmpty(in.SpecialRequests),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.bookings().Create(ctx, b); err != nil {
		return models.Booking{}, persistence("create booking", err)
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%s user_id=%s total=%s", b.ID, b.UserID, b.TotalPrice))
	return b, nil
}

func (s BookingService) ListBookings(ctx context.Context, caller domain.Caller, page domain.Pagination) ([]models.Booking, domain.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.bookings().List(ctx, caller.Scope(), page)
	if err != nil {
		return nil, page, persistence("list bookings", err)
	}
	page.Total = total
	return items, page, nil
}

// GetBooking hides bookings outside the caller's scope as not found.
func (s BookingService) GetBooking(ctx context.Context, caller domain.Caller, id string) (models.Booking, error) {
	b, err := s.bookings().GetByID(ctx, utils.TrimOrEmpty(id))
	if err != nil {
		return models.Booking{}, persistence("get booking", err)
	}
	if !caller.CanAccess(b.UserID) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

// confirmBooking is only reached from a successful payment, inside its
// transaction.
func (s BookingService) confirmBooking(ctx context.Context, tx intdb.DBTX, bookingID string) error {
	repo := repositories.BookingRepository{DB: tx}
	if err := repo.UpdateStatus(ctx, bookingID, models.BookingConfirmed, utils.NowUTC()); err != nil {
		return domain.PersistenceError{Op: "confirm booking", Err: err}
	}
	return nil
}
