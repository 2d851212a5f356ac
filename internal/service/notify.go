package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/config"
)

// EmailSender dispatches one transactional email. No retry, no
// idempotency key: callers observe the result and move on.
type EmailSender interface {
	Send(toEmail, toName, subject, plainBody, htmlBody string) error
}

// MessageSender dispatches one text message to the fixed staff recipient
// and returns the provider message SID.
type MessageSender interface {
	Send(body string) (string, error)
}

type SendGridEmailSender struct {
	cfg config.EmailConfig
}

func NewSendGridEmailSender(cfg config.EmailConfig) *SendGridEmailSender {
	return &SendGridEmailSender{cfg: cfg}
}

func (s *SendGridEmailSender) Send(toEmail, toName, subject, plainBody, htmlBody string) error {
	if missing := s.cfg.Missing(); len(missing) > 0 {
		return config.MissingError(missing)
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, htmlBody)

	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s), status %d", toEmail, subject, response.StatusCode)
		return nil
	}

	log.Printf("SendGrid returned status %d for %s, body: %s", response.StatusCode, toEmail, response.Body)
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}

type TwilioMessageSender struct {
	cfg config.MessageConfig
}

func NewTwilioMessageSender(cfg config.MessageConfig) *TwilioMessageSender {
	return &TwilioMessageSender{cfg: cfg}
}

func (s *TwilioMessageSender) Send(body string) (string, error) {
	if missing := s.cfg.Missing(); len(missing) > 0 {
		return "", config.MissingError(missing)
	}

	if !strings.HasPrefix(s.cfg.StaffNumber, "+") {
		log.Printf("WARNING: staff number %q is not in E.164 format, the message may fail", s.cfg.StaffNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.AccountSID,
		Password:   s.cfg.AuthToken,
		AccountSid: s.cfg.AccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.cfg.StaffNumber)
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error sending staff message via Twilio: %v", err)
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("Staff message sent, SID: %s", *resp.Sid)
		return *resp.Sid, nil
	}
	log.Printf("Staff message sent but no SID in the response")
	return "", nil
}
