package handlers

import (
	"net/http"

	"toursbackend/internal/domain/models"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/services"

	"github.com/gin-gonic/gin"
)

func invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/invoices
func CreateInvoice(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.InvoiceInput
	if !BindJSONOrError(c, &in) {
		return
	}

	inv, err := invoiceService(c).CreateInvoice(c.Request.Context(), caller, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusCreated, inv, "invoice created")
}

// GET /api/invoices
func ListInvoices(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	items, page, err := invoiceService(c).ListInvoices(c.Request.Context(), caller, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, page, "invoices retrieved")
}

// GET /api/invoices/:id
func GetInvoice(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	inv, err := invoiceService(c).GetInvoice(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, inv, "invoice retrieved")
}

// PATCH /api/invoices/:id/status (admin)
func UpdateInvoiceStatus(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.InvoiceStatusInput
	if !BindJSONOrError(c, &in) {
		return
	}

	inv, err := invoiceService(c).UpdateInvoiceStatus(c.Request.Context(), caller, c.Param("id"), in.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, inv, "invoice status updated")
}

// PUT|PATCH /api/invoices/:id
func UpdateInvoice(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var in models.InvoiceUpdateInput
	if !BindJSONOrError(c, &in) {
		return
	}

	inv, err := invoiceService(c).UpdateInvoice(c.Request.Context(), caller, c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, inv, "invoice updated")
}

// DELETE /api/invoices/:id
func DeleteInvoice(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := invoiceService(c).DeleteInvoice(c.Request.Context(), caller, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, http.StatusOK, nil, "invoice deleted")
}
