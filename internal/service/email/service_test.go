package email

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
)

// MockProvider is a mock email provider for testing
type MockProvider struct {
	SentEmails []MockEmail
	ShouldFail bool
}

type MockEmail struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

func (m *MockProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if m.ShouldFail {
		return errors.New("mock send failed")
	}
	m.SentEmails = append(m.SentEmails, MockEmail{To: to, Subject: subject, Body: body, IsHTML: isHTML})
	return nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(provider *MockProvider) *Service {
	s := &Service{
		config: &Config{
			Provider:  "mock",
			FromEmail: "test@charging-station-manager.local",
			FromName:  "Charging Station Manager",
		},
		provider:  provider,
		templates: make(map[string]*template.Template),
		log:       newTestLogger(),
	}
	s.templates["charging_completed"] = template.Must(
		template.New("charging_completed").Parse(chargingCompletedTemplate))
	return s
}

func TestSend_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	provider := &MockProvider{}
	service := newTestService(provider)

	// Act
	err := service.Send(ctx, "customer@example.com", "Hello", "plain body")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(provider.SentEmails) != 1 {
		t.Fatalf("expected one email, got %d", len(provider.SentEmails))
	}
	sent := provider.SentEmails[0]
	if sent.To != "customer@example.com" {
		t.Errorf("expected recipient customer@example.com, got %s", sent.To)
	}
	if sent.IsHTML {
		t.Error("expected a plain text email")
	}
}

func TestSend_ProviderFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := newTestService(&MockProvider{ShouldFail: true})

	// Act
	err := service.Send(ctx, "customer@example.com", "Hello", "body")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSendChargingCompleted_RendersReceipt(t *testing.T) {
	// Arrange
	ctx := context.Background()
	provider := &MockProvider{}
	service := newTestService(provider)

	end := time.Date(2026, time.May, 10, 14, 30, 0, 0, time.UTC)
	user := &domain.User{ID: "user-1", Name: "Linh", Email: "linh@example.com"}
	session := &domain.ChargingSession{
		ID:        "sess-1",
		StartTime: end.Add(-45 * time.Minute),
		EndTime:   &end,
		EnergyKwh: 8.25,
		Cost:      24750,
		Status:    domain.SessionStatusCompleted,
	}

	// Act
	err := service.SendChargingCompleted(ctx, user, session)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(provider.SentEmails) != 1 {
		t.Fatalf("expected one email, got %d", len(provider.SentEmails))
	}
	sent := provider.SentEmails[0]
	if sent.To != "linh@example.com" {
		t.Errorf("expected recipient linh@example.com, got %s", sent.To)
	}
	if !sent.IsHTML {
		t.Error("expected an HTML receipt")
	}
	if !strings.Contains(sent.Body, "sess-1") {
		t.Error("expected receipt to reference the session")
	}
	if !strings.Contains(sent.Body, "8.25") {
		t.Error("expected receipt to include the energy delivered")
	}
}
