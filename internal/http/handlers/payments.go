package handlers

import (
	"net/http"
	"sync"

	"toursbackend/internal/domain/models"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	paymentOptsMu sync.RWMutex
	singleSuccess = true
)

// SetSingleSuccess configures the one-successful-payment-per-booking guard.
func SetSingleSuccess(on bool) {
	paymentOptsMu.Lock()
	defer paymentOptsMu.Unlock()
	singleSuccess = on
}

func paymentService(c *gin.Context) services.PaymentService {
	paymentOptsMu.RLock()
	defer paymentOptsMu.RUnlock()
	return services.PaymentService{
		RequestID:     middleware.GetRequestID(c),
		SingleSuccess: singleSuccess,
	}
}

// POST /api/payments
func ProcessPayment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	p, err := paymentService(c).ProcessPayment(c.Request.Context(), caller, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusCreated, p, "payment processed successfully")
}

// GET /api/payments
func ListPayments(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	items, page, err := paymentService(c).ListPayments(c.Request.Context(), caller, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, page, "payments retrieved")
}

// GET /api/payments/:id
func GetPayment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	p, err := paymentService(c).GetPayment(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, p, "payment retrieved")
}
