package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"naija-events/internal/models"
	"naija-events/internal/utils"
)

// PDFService handles PDF generation for tickets
type PDFService struct {
	credentials *TicketCredentialService
	currency    string
	now         func() time.Time
}

// NewPDFService creates a new PDF service
func NewPDFService(credentials *TicketCredentialService, currency string) *PDFService {
	return &PDFService{credentials: credentials, currency: currency, now: time.Now}
}

// GenerateTicketsPDF renders one A4 page per ticket with the event details,
// attendee and a scannable QR code
func (s *PDFService) GenerateTicketsPDF(tickets []*models.Ticket, event *models.Event, order *models.Order) ([]byte, error) {
	if event == nil || order == nil {
		return nil, errors.New("event and order are required")
	}
	if len(tickets) == 0 {
		return nil, errors.New("order has no tickets")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(event.Name+" tickets", true)
	pdf.SetCreator("Naija Events", false)
	pdf.SetAutoPageBreak(false, 15)

	// core fonts are cp1252; this keeps accented attendee names readable
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, ticket := range tickets {
		pdf.AddPage()
		s.header(pdf, tr, event)
		s.ticketBody(pdf, tr, ticket, event, order, i+1, len(tickets))
		if err := s.qrCode(pdf, ticket); err != nil {
			return nil, err
		}
		s.footer(pdf, order)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) header(pdf *gofpdf.Fpdf, tr func(string) string, event *models.Event) {
	pdf.SetFillColor(0, 135, 81)
	pdf.Rect(0, 0, 210, 32, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(15, 8)
	pdf.CellFormat(180, 10, tr(utils.TruncateText(event.Name, 45)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(15)
	when := event.StartDate.Format("Monday, January 2, 2006 at 3:04 PM")
	pdf.CellFormat(180, 7, tr(when+"  |  "+event.DisplayLocation()), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (s *PDFService) ticketBody(pdf *gofpdf.Fpdf, tr func(string) string, ticket *models.Ticket, event *models.Event, order *models.Order, n, total int) {
	pdf.SetXY(15, 42)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(100, 8, fmt.Sprintf("TICKET %d OF %d", n, total), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	typeName := "Admission"
	price := "Free"
	if ticket.TicketType != nil {
		typeName = ticket.TicketType.Name
		if ticket.TicketType.Price > 0 {
			price = s.formatAmount(ticket.TicketType.Price)
		}
	}

	rows := [][2]string{
		{"Attendee", ticket.AttendeeName},
		{"Email", ticket.AttendeeEmail},
		{"Ticket type", typeName},
		{"Price", price},
		{"Ticket ID", ticket.ID},
		{"Order", order.ID},
		{"Purchased by", order.BuyerName},
		{"Duration", utils.FormatDuration(event.Duration())},
	}
	for _, row := range rows {
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(32, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(85, 7, tr(utils.TruncateText(row[1], 48)), "", 1, "L", false, 0, "")
	}

	if ticket.IsCheckedIn {
		pdf.Ln(3)
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 30, 30)
		pdf.CellFormat(100, 7, "ALREADY CHECKED IN", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func (s *PDFService) qrCode(pdf *gofpdf.Fpdf, ticket *models.Ticket) error {
	png, err := s.credentials.QRCodePNG(ticket.QRCode)
	if err != nil {
		return fmt.Errorf("failed to render QR code for ticket %s: %w", ticket.ID, err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := "qr_" + ticket.ID
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, 135, 42, 60, 60, false, opts, 0, "")

	pdf.SetXY(135, 103)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(60, 5, "Scan at the entrance", "", 1, "C", false, 0, "")
	return pdf.Error()
}

func (s *PDFService) footer(pdf *gofpdf.Fpdf, order *models.Order) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.4)
	pdf.Line(15, 125, 195, 125)

	pdf.SetXY(15, 130)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	notes := []string{
		"Present this ticket, printed or on your phone, at the event entrance.",
		"Each ticket admits one person and can be scanned once.",
		fmt.Sprintf("Order total: %s (%s)", s.formatAmount(order.TotalAmount), order.GetStatusDisplayName()),
		"Generated on " + s.now().Format("January 2, 2006 at 3:04 PM"),
	}
	for _, note := range notes {
		pdf.SetX(15)
		pdf.CellFormat(180, 5, note, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// formatAmount spells the naira sign as NGN; the core PDF fonts cannot draw it
func (s *PDFService) formatAmount(m models.Money) string {
	return strings.Replace(utils.FormatCurrency(m, s.currency), "₦", "NGN ", 1)
}
