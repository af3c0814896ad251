package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/mocks"
)

const testSecret = "test-secret-key"

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	password := "password123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "customer@example.com" {
				return &domain.User{
					ID:       "user-1",
					Email:    email,
					Password: string(hashed),
					Role:     domain.UserRoleCustomer,
					Status:   "Active",
				}, nil
			}
			return nil, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	access, refresh, err := service.Login(ctx, "customer@example.com", password)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if access == "" {
		t.Error("expected access token, got empty string")
	}
	if refresh == "" {
		t.Error("expected refresh token, got empty string")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockUserRepository{}, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	_, _, err := service.Login(ctx, "nobody@example.com", "password")

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	users := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, Password: string(hashed)}, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	_, _, err := service.Login(ctx, "customer@example.com", "wrong")

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRegister_DefaultsToCustomer(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var saved *domain.User
	users := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, u *domain.User) error {
			saved = u
			return nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	err := service.Register(ctx, &domain.User{Email: "new@example.com", Password: "secret"})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved == nil {
		t.Fatal("expected user to be persisted")
	}
	if saved.Role != domain.UserRoleCustomer {
		t.Errorf("expected role CUSTOMER, got %s", saved.Role)
	}
	if saved.Customer == nil || saved.Customer.UserID != saved.ID {
		t.Error("expected a customer profile linked to the user")
	}
	if saved.Vendor != nil {
		t.Error("expected no vendor profile for a customer")
	}
	if saved.Password == "secret" {
		t.Error("expected password to be hashed")
	}
}

func TestRegister_VendorGetsVendorProfile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var saved *domain.User
	users := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, u *domain.User) error {
			saved = u
			return nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	err := service.Register(ctx, &domain.User{
		Email:    "vendor@example.com",
		Password: "secret",
		Role:     domain.UserRoleVendor,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.Vendor == nil || saved.Vendor.UserID != saved.ID {
		t.Error("expected a vendor profile linked to the user")
	}
	if saved.Customer != nil {
		t.Error("expected no customer profile for a vendor")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	err := service.Register(ctx, &domain.User{Email: "taken@example.com", Password: "secret"})

	// Assert
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockUserRepository{}, mocks.NewMockCache(), testSecret, newTestLogger())

	// Act
	err := service.Register(ctx, &domain.User{Email: "x@example.com", Password: "secret", Role: "SUPERUSER"})

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &domain.User{ID: "user-1", Email: "a@example.com", Password: string(hashed), Role: domain.UserRoleCustomer}
	users := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())
	access, _, err := service.Login(ctx, "a@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	_, err = service.RefreshToken(ctx, access)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &domain.User{ID: "user-1", Email: "a@example.com", Password: string(hashed), Role: domain.UserRoleCustomer}
	users := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())
	_, refresh, err := service.Login(ctx, "a@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	access, err := service.RefreshToken(ctx, refresh)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if access == "" {
		t.Error("expected a fresh access token")
	}
}

func TestValidateToken_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := &domain.User{ID: "user-1", Email: "a@example.com", Role: domain.UserRoleCustomer, Status: "Active"}
	users := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "user-1" {
				return user, nil
			}
			return nil, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())
	token := signTestToken(t, "user-1", "jti-1")

	// Act
	got, err := service.ValidateToken(ctx, token)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("expected user-1, got %s", got.ID)
	}
}

func TestValidateToken_Revoked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Status: "Active"}, nil
		},
	}
	cache := mocks.NewMockCache()
	_ = cache.Set(ctx, revokedTokenPrefix+"jti-1", "1", time.Hour)
	service := NewService(users, cache, testSecret, newTestLogger())
	token := signTestToken(t, "user-1", "jti-1")

	// Act
	_, err := service.ValidateToken(ctx, token)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestValidateToken_BlockedUser(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Status: "Blocked"}, nil
		},
	}
	service := NewService(users, mocks.NewMockCache(), testSecret, newTestLogger())
	token := signTestToken(t, "user-1", "jti-2")

	// Act
	_, err := service.ValidateToken(ctx, token)

	// Assert
	if !domain.IsKind(err, domain.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockUserRepository{}, mocks.NewMockCache(), "another-secret", newTestLogger())
	token := signTestToken(t, "user-1", "jti-3")

	// Act
	_, err := service.ValidateToken(ctx, token)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func signTestToken(t *testing.T, userID, jti string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"typ": "access",
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}
