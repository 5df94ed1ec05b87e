package handlers

import (
	"net/http"

	"toursbackend/internal/domain/models"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/services"

	"github.com/gin-gonic/gin"
)

func refundService(c *gin.Context) services.RefundService {
	return services.RefundService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/refunds
func CreateRefund(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.RefundInput
	if !BindJSONOrError(c, &in) {
		return
	}

	rf, err := refundService(c).CreateRefund(c.Request.Context(), caller, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusCreated, rf, "refund requested")
}

// GET /api/refunds
func ListRefunds(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	items, page, err := refundService(c).ListRefunds(c.Request.Context(), caller, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, page, "refunds retrieved")
}

// GET /api/refunds/:id
func GetRefund(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	rf, err := refundService(c).GetRefund(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, rf, "refund retrieved")
}

// PATCH /api/refunds/:id/resolve (admin)
func ResolveRefund(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.RefundResolveInput
	if !BindJSONOrError(c, &in) {
		return
	}

	rf, err := refundService(c).ResolveRefund(c.Request.Context(), caller, c.Param("id"), in.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, rf, "refund resolved")
}

// PUT|PATCH /api/refunds/:id
func UpdateRefund(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.RefundUpdateInput
	if !BindJSONOrError(c, &in) {
		return
	}

	rf, err := refundService(c).UpdateRefund(c.Request.Context(), caller, c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, rf, "refund updated")
}

// DELETE /api/refunds/:id
func DeleteRefund(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := refundService(c).DeleteRefund(c.Request.Context(), caller, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, nil, "refund deleted")
}
