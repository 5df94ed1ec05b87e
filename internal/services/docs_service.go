package services

import (
	"bytes"
	"fmt"
	"strings"

	"toursbackend/internal/domain/models"
	"toursbackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable invoice documents.
type DocsService struct {
	RequestID string
	// Issuer is printed in the header; defaults to "Tours & Travels".
	Issuer string
}

type invoiceDocData struct {
	Issuer          string
	InvoiceNumber   string
	Status          string
	CreatedDate     string
	DueDate         string
	BookingID       string
	CustomerID      string
	TourID          string
	PackageID       string
	TravelersCount  int
	BookingTotal    string
	Amount          string
	SpecialRequests string
}

func (s DocsService) GenerateInvoice(inv models.Invoice, booking models.Booking) ([]byte, string, error) {
	d := invoiceDocData{
		Issuer:          safe(s.Issuer, "Tours & Travels"),
		InvoiceNumber:   inv.InvoiceNumber,
		Status:          string(inv.Status),
		CreatedDate:     utils.FormatDate(inv.CreatedDate),
		DueDate:         inv.DueDate.String(),
		BookingID:       booking.ID,
		CustomerID:      booking.UserID,
		TourID:          booking.TourID,
		TravelersCount:  booking.TravelersCount,
		BookingTotal:    utils.FormatMoney(booking.TotalPrice),
		Amount:          utils.FormatMoney(inv.Amount),
		SpecialRequests: booking.SpecialRequests,
	}
	if booking.PackageID != nil {
		d.PackageID = *booking.PackageID
	}

	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("invoice=%s", inv.InvoiceNumber))
	return buildInvoicePDF(d)
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+d.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, d.Issuer)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Invoice No  : %s", safe(d.InvoiceNumber, "-")),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Issued      : %s", safe(d.CreatedDate, "-")),
		fmt.Sprintf("Due         : %s", safe(d.DueDate, "-")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Booking:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	details := []string{
		fmt.Sprintf("Reference   : %s", safe(d.BookingID, "-")),
		fmt.Sprintf("Customer    : %s", safe(d.CustomerID, "-")),
		fmt.Sprintf("Tour        : %s", safe(d.TourID, "-")),
		fmt.Sprintf("Package     : %s", safe(d.PackageID, "-")),
		fmt.Sprintf("Travelers   : %d", d.TravelersCount),
		fmt.Sprintf("Booking total: %s", d.BookingTotal),
	}
	for _, line := range details {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	if strings.TrimSpace(d.SpecialRequests) != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, "Special requests: "+d.SpecialRequests, "", "", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Amount due: "+d.Amount)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please settle this invoice before the due date.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", utils.SafeFilenamePart(d.InvoiceNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
