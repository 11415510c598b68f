package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"casahub-backend/internal/config"
	"casahub-backend/internal/logger"
)

// sendGridEmailService delivers transactional email through SendGrid.
// When no API key is configured the service logs the message and drops
// it, which keeps local development working without credentials.
type sendGridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	var client *sendgrid.Client
	if cfg.APIKey != "" {
		client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return &sendGridEmailService{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) SendWelcomeEmail(ctx context.Context, email, name, orgName, username, tempPassword string) error {
	subject := fmt.Sprintf("Welcome to %s", orgName)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your volunteer application with %s has been approved and your advocate account is ready.\n\n"+
			"Username: %s\n"+
			"Temporary password: %s\n\n"+
			"You will be asked to choose a new password on first sign-in.\n",
		name, orgName, username, tempPassword)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendRejectionNotification(ctx context.Context, email, name, orgName, reason string) error {
	subject := fmt.Sprintf("Update on your application with %s", orgName)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for your interest in volunteering with %s. "+
			"After review, we are unable to move your application forward.\n\n"+
			"Reason: %s\n",
		name, orgName, reason)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendStalePipelineReminder(ctx context.Context, adminEmail, orgName string, candidateNames []string) error {
	subject := fmt.Sprintf("%s: volunteer applications awaiting action", orgName)
	body := fmt.Sprintf(
		"The following volunteer candidates have been waiting in the onboarding pipeline without a status change:\n\n%s\n\n"+
			"Please review them in the pipeline board.\n",
		"- "+strings.Join(candidateNames, "\n- "))
	return s.send(ctx, adminEmail, "", subject, body)
}

func (s *sendGridEmailService) SendHearingReminder(ctx context.Context, email, caseNumber, hearingDate, location string) error {
	subject := fmt.Sprintf("Upcoming hearing for case %s", caseNumber)
	body := fmt.Sprintf(
		"A court hearing for case %s is scheduled on %s at %s.\n\n"+
			"Please make sure your court report is up to date.\n",
		caseNumber, hearingDate, location)
	return s.send(ctx, email, "", subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	if s.client == nil {
		logger.Warn("sendgrid not configured, dropping email", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", resp.StatusCode)
	return nil
}
