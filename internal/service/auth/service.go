package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
	revokedTokenPrefix   = "auth:revoked:"
)

type Service struct {
	users     ports.UserRepository
	cache     ports.Cache
	jwtSecret []byte
	log       *zap.Logger
}

func NewService(users ports.UserRepository, cache ports.Cache, jwtSecret string, log *zap.Logger) ports.AuthService {
	return &Service{
		users:     users,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", domain.InvalidInput("invalid credentials")
	}
	if user == nil {
		return "", "", domain.InvalidInput("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", domain.InvalidInput("invalid credentials")
	}
	return s.generateTokens(user)
}

// Register creates a user with the role payload matching its role tag.
func (s *Service) Register(ctx context.Context, user *domain.User) error {
	switch user.Role {
	case domain.UserRoleAdmin, domain.UserRoleVendor, domain.UserRoleCustomer:
	case "":
		user.Role = domain.UserRoleCustomer
	default:
		return domain.InvalidInput("unknown role %q", user.Role)
	}

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.Conflict("email %s is already registered", user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.ID = uuid.New().String()
	user.Password = string(hashed)
	user.Status = "Active"
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	switch user.Role {
	case domain.UserRoleVendor:
		if user.Vendor == nil {
			user.Vendor = &domain.VendorProfile{}
		}
		user.Vendor.ID = uuid.New().String()
		user.Vendor.UserID = user.ID
		user.Customer = nil
	case domain.UserRoleCustomer:
		if user.Customer == nil {
			user.Customer = &domain.CustomerProfile{}
		}
		user.Customer.ID = uuid.New().String()
		user.Customer.UserID = user.ID
		user.Vendor = nil
	default:
		user.Vendor = nil
		user.Customer = nil
	}

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims["typ"] != "refresh" {
		return "", domain.InvalidInput("not a refresh token")
	}
	userID, _ := claims["sub"].(string)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return "", domain.NotFound("user not found")
	}
	return s.sign(user, "access", accessTokenDuration)
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if jti, ok := claims["jti"].(string); ok && s.cache != nil {
		if revoked, _ := s.cache.Get(ctx, revokedTokenPrefix+jti); revoked != "" {
			return nil, domain.InvalidInput("token has been revoked")
		}
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.InvalidInput("invalid token subject")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	if user.Status == "Blocked" {
		return nil, domain.Forbidden("account is blocked")
	}
	return user, nil
}

func (s *Service) generateTokens(user *domain.User) (string, string, error) {
	access, err := s.sign(user, "access", accessTokenDuration)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.sign(user, "refresh", refreshTokenDuration)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Service) sign(user *domain.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"typ":  typ,
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *Service) parse(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.InvalidInput("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.InvalidInput("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.InvalidInput("invalid token claims")
	}
	return claims, nil
}
