package utils

import (
	"fmt"
	"net/smtp"

	"VIAJAPLUS_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{config: cfg}
}

// SendTripInvitation notifies an invitee that they were invited to a trip.
// Callers treat this as best-effort; a failure never blocks the invitation.
func (e *EmailService) SendTripInvitation(to, tripTitle, inviterName string) error {
	subject := fmt.Sprintf("You've been invited to join \"%s\" on Viaja+", tripTitle)
	body := fmt.Sprintf(`Hello,

%s invited you to collaborate on the trip "%s".

Sign in to Viaja+ with this email address to accept or decline the invitation.

Safe travels,
Viaja+ Team
`, inviterName, tripTitle)

	return e.sendEmail(to, subject, body)
}

// SendVerificationCode sends a password-reset verification code.
func (e *EmailService) SendVerificationCode(to, code string) error {
	subject := "Password Reset Verification Code"
	body := fmt.Sprintf(`Hello,

You requested to reset your password for Viaja+.

Your verification code is: %s

This code will expire in 3 minutes.

If you didn't request this, please ignore this email.

Best regards,
Viaja+ Team
`, code)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
