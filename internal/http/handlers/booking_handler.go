package handlers

import (
	"net/http"

	"toursbackend/internal/domain/models"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	b, err := bookingService(c).CreateBooking(c.Request.Context(), caller, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusCreated, b, "booking created")
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	items, page, err := bookingService(c).ListBookings(c.Request.Context(), caller, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, page, "bookings retrieved")
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	b, err := bookingService(c).GetBooking(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, b, "booking retrieved")
}
