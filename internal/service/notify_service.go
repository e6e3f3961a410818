package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Mailer is the mail-relay collaborator: best-effort delivery of one message.
type Mailer interface {
	Send(toEmail, toName, subject, plainText, html string) error
	SendWithReplyTo(toEmail, toName, replyTo, subject, plainText, html string) error
	Configured() bool
}

// SMSSender is the optional SMS side channel.
type SMSSender interface {
	Send(toNumber, body string) error
}

// SendGridMailer sends through the SendGrid API using environment
// configuration.
type SendGridMailer struct{}

func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{}
}

func (m *SendGridMailer) Configured() bool {
	return os.Getenv("SENDGRID_API_KEY") != "" && os.Getenv("SENDGRID_FROM_EMAIL") != ""
}

func (m *SendGridMailer) Send(toEmail, toName, subject, plainText, html string) error {
	return m.send(toEmail, toName, "", subject, plainText, html)
}

func (m *SendGridMailer) SendWithReplyTo(toEmail, toName, replyTo, subject, plainText, html string) error {
	return m.send(toEmail, toName, replyTo, subject, plainText, html)
}

func (m *SendGridMailer) send(toEmail, toName, replyTo, subject, plainText, html string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not set")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Lenslight Photography"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, html)
	if replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmail, err)
		return fmt.Errorf("sending email through SendGrid failed: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s). Status: %d", toEmail, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error sending email to %s via SendGrid. Status: %d, body: %s",
		toEmail, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}

// TwilioSMSSender sends through the Twilio REST API using environment
// configuration.
type TwilioSMSSender struct{}

func NewTwilioSMSSender() *TwilioSMSSender {
	return &TwilioSMSSender{}
}

func (s *TwilioSMSSender) Send(toNumber, body string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not configured. SMS will not be sent.")
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: Destination number '%s' is not E.164 (no leading '+'). SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending SMS through Twilio failed: %w", err)
	}
	return nil
}
