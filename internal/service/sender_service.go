package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
)

const emailDateFormat = "02 Jan 2006 15:04"

// SenderService renders and dispatches the customer confirmation email
// and the staff booking message. Both are fire-and-report: the caller
// observes the result, nothing retries or rolls back.
type SenderService struct {
	email        EmailSender
	message      MessageSender
	templatePath string
}

func NewSenderService(email EmailSender, message MessageSender) *SenderService {
	return &SenderService{
		email:        email,
		message:      message,
		templatePath: filepath.Join("internal", "templates", "booking_confirmation_email.html"),
	}
}

// SendBookingEmail renders the confirmation for a booking snapshot and
// dispatches it to the customer.
func (s *SenderService) SendBookingEmail(data entities.BookingEmailData) error {
	subject := fmt.Sprintf("Your Saif Auto booking is confirmed - %s %s", data.CarMake, data.CarModel)

	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at Saif Auto is confirmed.\n\n"+
			"Booking details:\n"+
			"Vehicle: %s %s %d (Plate: %s)\n"+
			"Pickup: %s\n"+
			"Return: %s\n"+
			"Pickup location: %s\n",
		data.CustomerName, data.CarMake, data.CarModel, data.CarYear, data.LicensePlate,
		data.PickupFormatted, data.ReturnFormatted, data.PickupLocation,
	)
	if data.HasTotalPrice {
		plainBody += fmt.Sprintf("Total: %.2f MAD\n", data.TotalPrice)
	}
	plainBody += fmt.Sprintf(
		"\nWe will reach you at %s / %s if anything changes.\n\n"+
			"Thank you for choosing Saif Auto.\n\nSaif Auto. All rights reserved.",
		data.CustomerEmail, data.CustomerPhone,
	)

	htmlBody := s.renderHTML(data)
	return s.email.Send(data.CustomerEmail, data.CustomerName, subject, plainBody, htmlBody)
}

func (s *SenderService) renderHTML(data entities.BookingEmailData) string {
	tmpl, err := template.ParseFiles(s.templatePath)
	if err != nil {
		log.Printf("WARNING: could not parse email template (%s): %v", s.templatePath, err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("WARNING: could not execute email template for %s: %v", data.CustomerEmail, err)
		return ""
	}
	return buf.String()
}

// SendStaffMessage formats the fixed staff text and dispatches it to the
// configured staff number. Returns the provider SID.
func (s *SenderService) SendStaffMessage(data entities.StaffMessageData) (string, error) {
	body := fmt.Sprintf(
		"Saif Auto: new booking request\nName: %s\nPhone: %s\nPickup: %s\nReturn: %s\nService: %s",
		data.Name, data.Phone, data.BookingDate, data.ReturnDate, data.ServiceType,
	)
	return s.message.Send(body)
}

// FormatEmailDate renders a timestamp in the fixed locale used across
// confirmation surfaces.
func FormatEmailDate(t time.Time) string {
	loc, err := time.LoadLocation("Africa/Casablanca")
	if err != nil {
		loc = time.FixedZone("WET", 1*60*60)
	}
	return t.In(loc).Format(emailDateFormat)
}
