package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	LoginUser(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service autentica os operadores configurados por variáveis de ambiente.
// As senhas ficam apenas como hash bcrypt.
type Service struct {
	users    map[string]*domain.User
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(cfg *config.Config) *Service {
	users := map[string]*domain.User{}
	addUser := func(username, hash string, role int) {
		username = handleUsername(username)
		if username == "" || hash == "" {
			return
		}
		users[username] = &domain.User{Username: username, PasswordHash: hash, RoleID: role}
	}
	addUser(cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash, domain.RoleAdmin)
	addUser(cfg.Auth.ViewerUser, cfg.Auth.ViewerPassHash, domain.RoleViewer)

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		users:    users,
		secret:   []byte(cfg.Auth.Secret),
		tokenTTL: ttl,
		now:      time.Now,
	}
}

func handleUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Service) LoginUser(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	username = handleUsername(username)

	user, ok := s.users[username]
	if !ok {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, username, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	claims := domain.Claims{
		UserName:   user.Username,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	return claims, nil
}
