package api

import (
	stdhttp "net/http"

	intconfig "toursbackend/internal/config"
	h "toursbackend/internal/http/handlers"
	"toursbackend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.UseJSONFieldNames()
	h.SetSingleSuccess(env.Payments.SingleSuccess)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORS.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "route not found: "+c.Request.Method+" "+c.Request.URL.Path, nil)
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth([]byte(env.Auth.JWTSecret)))

		// Bookings
		bookings := authed.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)

		// Payments
		payments := authed.Group("/payments")
		payments.POST("", h.ProcessPayment)
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)

		// Invoices
		invoices := authed.Group("/invoices")
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.PATCH("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.GET("/:id/pdf", h.GetInvoicePDF)
		invoices.PATCH("/:id/status", middleware.RequireAdmin(), h.UpdateInvoiceStatus)

		// Refunds
		refunds := authed.Group("/refunds")
		refunds.POST("", h.CreateRefund)
		refunds.GET("", h.ListRefunds)
		refunds.GET("/:id", h.GetRefund)
		refunds.PUT("/:id", h.UpdateRefund)
		refunds.PATCH("/:id", h.UpdateRefund)
		refunds.DELETE("/:id", h.DeleteRefund)
		refunds.PATCH("/:id/resolve", middleware.RequireAdmin(), h.ResolveRefund)
	}

	return r
}
