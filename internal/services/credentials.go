package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"
)

// DefaultQRCodeSize is the edge length of generated QR images in pixels
const DefaultQRCodeSize = 256

// TicketQRPayload is the content encoded in a ticket's QR code
type TicketQRPayload struct {
	TicketID  string `json:"ticketId"`
	EventID   string `json:"eventId"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds at issue time
}

// TicketCredentialService issues and reads the scannable credential printed on each ticket
type TicketCredentialService struct {
	size int
	now  func() time.Time
}

// NewTicketCredentialService creates a credential service producing size x size QR images
func NewTicketCredentialService(size int) *TicketCredentialService {
	if size <= 0 {
		size = DefaultQRCodeSize
	}
	return &TicketCredentialService{size: size, now: time.Now}
}

// GenerateTicketQRData returns the JSON payload stored on the ticket and encoded in its QR code
func (s *TicketCredentialService) GenerateTicketQRData(ticketID, eventID string) (string, error) {
	payload := TicketQRPayload{
		TicketID:  ticketID,
		EventID:   eventID,
		Timestamp: s.now().UnixMilli(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	return string(data), nil
}

// ParseTicketQRData decodes a scanned payload. It returns nil when the data is
// not JSON or lacks a ticket or event ID.
func (s *TicketCredentialService) ParseTicketQRData(data string) *TicketQRPayload {
	var payload TicketQRPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil
	}
	if payload.TicketID == "" || payload.EventID == "" {
		return nil
	}
	return &payload
}

// QRCodePNG renders data as a PNG QR code
func (s *TicketCredentialService) QRCodePNG(data string) ([]byte, error) {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	png, err := qr.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// GenerateQRCode renders data as a PNG data URI suitable for an <img> src
func (s *TicketCredentialService) GenerateQRCode(data string) (string, error) {
	png, err := s.QRCodePNG(data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
