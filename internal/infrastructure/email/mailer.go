package email

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	"github.com/tu-usuario/taller-pro/pkg/config"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

var _ identidad.Mailer = (*Service)(nil)

// Provider transporte concreto de correo.
type Provider interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Service adaptador del puerto Mailer sobre un Provider (SendGrid o SMTP).
// Best-effort: el servicio no reintenta; el caller decide si reenvía.
type Service struct {
	provider Provider
	log      *logger.Logger
}

// NewService construye el servicio según la configuración.
// Provider "sendgrid" requiere API key; "smtp" sirve para Mailhog en desarrollo.
func NewService(cfg config.EmailConfig, log *logger.Logger) (*Service, error) {
	var provider Provider
	switch cfg.Provider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("email: SENDGRID_API_KEY requerido para provider sendgrid")
		}
		provider = NewSendGridProvider(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	case "smtp":
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, cfg.FromName)
	default:
		return nil, fmt.Errorf("email: provider desconocido %q", cfg.Provider)
	}
	return &Service{provider: provider, log: log}, nil
}

// Send envía un correo HTML.
func (s *Service) Send(ctx context.Context, to, subject, html string) error {
	s.log.Debug().Str("to", to).Str("subject", subject).Msg("enviando correo")
	if err := s.provider.Send(ctx, to, subject, html); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("envío de correo falló")
		return err
	}
	return nil
}
