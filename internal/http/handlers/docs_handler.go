package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetInvoicePDF returns the invoice document (inline).
func GetInvoicePDF(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := invoiceService(c).RenderInvoicePDF(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
