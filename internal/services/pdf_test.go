package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naija-events/internal/models"
)

func newTestPDFService() *PDFService {
	svc := NewPDFService(NewTicketCredentialService(0), "NGN")
	svc.now = fixedClock
	return svc
}

func TestPDFService_GenerateTicketsPDF(t *testing.T) {
	svc := newTestPDFService()
	event := publishedEvent()
	order := &models.Order{ID: "order-1", BuyerName: "Ngozi Okafor", TotalAmount: 3085000, PaymentStatus: models.PaymentCompleted}

	tickets := []*models.Ticket{
		{ID: "ticket-1", AttendeeName: "Adaeze Nwankwo", AttendeeEmail: "ada@example.com", QRCode: `{"ticketId":"ticket-1","eventId":"event-1","timestamp":1}`, TicketType: event.TicketTypes[1]},
		{ID: "ticket-2", AttendeeName: "Chidi Eze", AttendeeEmail: "chidi@example.com", QRCode: `{"ticketId":"ticket-2","eventId":"event-1","timestamp":1}`, IsCheckedIn: true},
	}

	out, err := svc.GenerateTicketsPDF(tickets, event, order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("/Count 2")))
}

func TestPDFService_GenerateTicketsPDF_Errors(t *testing.T) {
	svc := newTestPDFService()
	event := publishedEvent()
	order := &models.Order{ID: "order-1"}
	tickets := []*models.Ticket{{ID: "ticket-1", QRCode: "x"}}

	_, err := svc.GenerateTicketsPDF(tickets, nil, order)
	assert.Error(t, err)

	_, err = svc.GenerateTicketsPDF(tickets, event, nil)
	assert.Error(t, err)

	_, err = svc.GenerateTicketsPDF(nil, event, order)
	assert.Error(t, err)
}

func TestPDFService_FormatAmount(t *testing.T) {
	svc := newTestPDFService()
	assert.Equal(t, "NGN 15,000.00", svc.formatAmount(models.NewMoneyFromNaira(15000)))
}
