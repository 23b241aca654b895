package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencedirectory/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendJoinConfirmation sends the "join_confirmation" template to the member who just joined.
func (s *emailService) SendJoinConfirmation(ctx context.Context, data *domain.JoinConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("join confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("join_confirmation", data)
	if err != nil {
		return fmt.Errorf("render join_confirmation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send join confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "join confirmation sent", "to", data.Email)
	return nil
}
