package service

import (
	"fmt"
	"log"
	"os"

	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
)

type ContactService struct {
	Mailer Mailer
}

func NewContactService(mailer Mailer) *ContactService {
	return &ContactService{Mailer: mailer}
}

// SendContactMessage forwards a contact-form message to the studio owner and
// sends the sender an auto-reply. Unlike booking notifications these sends
// are synchronous: the endpoint's success means the relay accepted both.
func (s *ContactService) SendContactMessage(req entities.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("Missing required fields")
	}

	owner := os.Getenv("OWNER_EMAIL")
	if owner == "" || !s.Mailer.Configured() {
		log.Println("Mail relay not configured; contact message rejected")
		return apperrors.ErrInternal
	}

	ownerSubject := fmt.Sprintf("New Contact Message from %s", req.Name)
	ownerText := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", req.Name, req.Email, req.Message)
	ownerHTML := fmt.Sprintf(
		"<div style=\"font-family: sans-serif; max-width: 600px; margin: 0 auto;\">"+
			"<h2>New Contact Message</h2>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<hr /><p><strong>Message:</strong></p>"+
			"<p style=\"white-space: pre-wrap;\">%s</p></div>",
		req.Name, req.Email, req.Message,
	)
	if err := s.Mailer.SendWithReplyTo(owner, "", req.Email, ownerSubject, ownerText, ownerHTML); err != nil {
		log.Printf("Contact form: owner alert failed: %v", err)
		return apperrors.ErrInternal
	}

	replySubject := "We received your message"
	replyText := fmt.Sprintf(
		"Hi %s,\n\nThank you for contacting us. We have received your message and will get back to you shortly.\n\n"+
			"Best regards,\nLenslight Photography",
		req.Name,
	)
	replyHTML := fmt.Sprintf(
		"<div style=\"font-family: sans-serif; max-width: 600px; margin: 0 auto;\">"+
			"<h2>Message Received</h2>"+
			"<p>Hi %s,</p>"+
			"<p>Thank you for contacting us. We have received your message and will get back to you shortly.</p>"+
			"<hr /><p><strong>Your Message:</strong></p>"+
			"<p style=\"white-space: pre-wrap; color: #555;\">%s</p>"+
			"<br /><p>Best regards,<br>Lenslight Photography</p></div>",
		req.Name, req.Message,
	)
	if err := s.Mailer.Send(req.Email, req.Name, replySubject, replyText, replyHTML); err != nil {
		log.Printf("Contact form: auto-reply failed: %v", err)
		return apperrors.ErrInternal
	}

	return nil
}
