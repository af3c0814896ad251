package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// Provider is the transport behind the service: SendGrid in production,
// plain SMTP (Mailhog) in development.
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

type Config struct {
	Provider  string // "sendgrid" or "smtp"
	FromEmail string
	FromName  string

	SendGridAPIKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

func DefaultConfig() *Config {
	return &Config{
		Provider:  "smtp",
		FromEmail: "noreply@charging-station-manager.local",
		FromName:  "Charging Station Manager",
		SMTPHost:  "localhost",
		SMTPPort:  1025, // Mailhog default
	}
}

type Service struct {
	config    *Config
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

func NewService(config *Config, log *zap.Logger) (ports.EmailService, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	s.templates["charging_completed"] = template.Must(
		template.New("charging_completed").Parse(chargingCompletedTemplate))

	return s, nil
}

func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("failed to send email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendChargingCompleted emails the customer a receipt for a finished
// session.
func (s *Service) SendChargingCompleted(ctx context.Context, user *domain.User, session *domain.ChargingSession) error {
	endTime := ""
	if session.EndTime != nil {
		endTime = session.EndTime.Format("2006-01-02 15:04:05")
	}
	data := map[string]interface{}{
		"UserName":  user.Name,
		"SessionID": session.ID,
		"StartTime": session.StartTime.Format("2006-01-02 15:04:05"),
		"EndTime":   endTime,
		"EnergyKwh": fmt.Sprintf("%.2f", session.EnergyKwh),
		"Cost":      fmt.Sprintf("%.2f", session.Cost),
	}

	var buf bytes.Buffer
	if err := s.templates["charging_completed"].Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	if err := s.provider.Send(ctx, user.Email, "Charging Session Completed", buf.String(), true); err != nil {
		s.log.Error("failed to send receipt", zap.String("to", user.Email), zap.Error(err))
		return fmt.Errorf("failed to send receipt: %w", err)
	}
	return nil
}

const chargingCompletedTemplate = `
<html>
<body>
	<h2>Charging complete</h2>
	<p>Hi {{.UserName}},</p>
	<p>Your charging session <strong>{{.SessionID}}</strong> has finished.</p>
	<ul>
		<li>Started: {{.StartTime}}</li>
		<li>Ended: {{.EndTime}}</li>
		<li>Energy delivered: {{.EnergyKwh}} kWh</li>
		<li>Total cost: {{.Cost}}</li>
	</ul>
	<p>Thank you for charging with us.</p>
</body>
</html>
`
