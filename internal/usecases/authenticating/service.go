package authenticating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/config"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	apiErrors "github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(ctx context.Context, businessID, password string) (string, *domain.Business, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ListBusinesses(ctx context.Context) ([]*domain.Business, error)
}

type Service struct {
	businessRepo repository.BusinessRepository
	cfg          *config.Config
}

func NewService(businessRepo repository.BusinessRepository, cfg *config.Config) Authenticator {
	return &Service{
		businessRepo: businessRepo,
		cfg:          cfg,
	}
}

// Login autentica um tenant por business_id e senha e emite o token JWT
func (s *Service) Login(ctx context.Context, businessID, password string) (string, *domain.Business, error) {
	if businessID == "" || password == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "business_id e senha são obrigatórios")
	}

	business, err := s.businessRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar business no banco de dados")
	}

	if business == nil {
		return "", nil, NewAuthError(ErrBusinessNotFound, apiErrors.ErrBusinessNotFound, "Business não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewBusinessAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, business.BusinessID, "Senha incorreta")
	}

	token, err := s.generateJWT(business)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, business, nil
}

func (s *Service) generateJWT(business *domain.Business) (string, error) {
	ttl := s.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := domain.Claims{
		BusinessID:   business.BusinessID,
		BusinessName: business.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

// ValidateToken verifica assinatura e expiração do token e devolve as claims
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.BusinessID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// ListBusinesses lista os tenants cadastrados, sem o hash de senha
func (s *Service) ListBusinesses(ctx context.Context) ([]*domain.Business, error) {
	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, business := range businesses {
		business.PasswordHash = ""
	}

	return businesses, nil
}
