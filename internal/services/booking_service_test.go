package services

import (
	"context"
	"testing"

	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return BookingService{DB: db}, mock
}

func TestCreateBookingPricesAndBindsCaller(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery(`SELECT id, base_price FROM tours WHERE id = \?`).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}).AddRow("t-1", "25000.00"))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "u-1", "t-1", nil, 2, sqlmock.AnyArg(), "PENDING",
			sqlmock.AnyArg(), "window seat", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	b, err := svc.CreateBooking(context.Background(), domain.Caller{ID: "u-1"}, models.BookingInput{
		TourID:          "t-1",
		TravelersCount:  2,
		SpecialRequests: "  window seat ",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", b.UserID)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "50000.00", b.TotalPrice.String())
	assert.NotEmpty(t, b.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingWithPackageModifier(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery("FROM tours").WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}).AddRow("t-1", "15000.00"))
	mock.ExpectQuery("FROM tour_packages").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tour_id", "price_modifier"}).AddRow("p-1", "t-1", "250.50"))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))

	pkg := "p-1"
	b, err := svc.CreateBooking(context.Background(), domain.Caller{ID: "u-1"}, models.BookingInput{
		TourID:         "t-1",
		PackageID:      &pkg,
		TravelersCount: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "61002.00", b.TotalPrice.String())
	require.NotNil(t, b.PackageID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsPackageOfAnotherTour(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery("FROM tours").WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}).AddRow("t-1", "15000.00"))
	mock.ExpectQuery("FROM tour_packages").WithArgs("p-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tour_id", "price_modifier"}).AddRow("p-9", "t-2", "0"))

	pkg := "p-9"
	_, err := svc.CreateBooking(context.Background(), domain.Caller{ID: "u-1"}, models.BookingInput{
		TourID: "t-1", PackageID: &pkg, TravelersCount: 1,
	})
	require.True(t, domain.IsValidation(err))
	assert.Contains(t, domain.AsValidationErrors(err).Fields(), "package")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownTour(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery("FROM tours").WithArgs("t-x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}))

	_, err := svc.CreateBooking(context.Background(), domain.Caller{ID: "u-1"}, models.BookingInput{
		TourID: "t-x", TravelersCount: 1,
	})
	require.True(t, domain.IsValidation(err))
	assert.Contains(t, domain.AsValidationErrors(err).Fields(), "tour")
}

func TestCreateBookingRequiresTravelers(t *testing.T) {
	svc, mock := newBookingService(t)

	_, err := svc.CreateBooking(context.Background(), domain.Caller{ID: "u-1"}, models.BookingInput{TourID: "t-1"})
	require.True(t, domain.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingHidesOtherUsersBooking(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery(`FROM bookings b WHERE b.id = \?`).WithArgs("b-1").
		WillReturnRows(bookingRows("b-1", "u-1", "PENDING"))

	_, err := svc.GetBooking(context.Background(), domain.Caller{ID: "u-2"}, "b-1")
	require.True(t, domain.IsNotFound(err))
}

func TestListBookingsScopesNonAdmin(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings b WHERE b.user_id = \?`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`WHERE b.user_id = \? ORDER BY`).WithArgs("u-1", 20, 0).
		WillReturnRows(bookingRows("b-1", "u-1", "PENDING"))

	items, page, err := svc.ListBookings(context.Background(), domain.Caller{ID: "u-1"}, domain.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	require.NoError(t, mock.ExpectationsWereMet())
}
