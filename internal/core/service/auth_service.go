package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// AdminCredential is the single hardcoded administrator identity. The
// admin is not a client record and has unrestricted visibility.
type AdminCredential struct {
	Username string
	Password string
}

// AuthService implements the login gate.
type AuthService struct {
	clients   ports.ClientRepository
	verifier  ports.CredentialVerifier
	admin     AdminCredential
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	clients ports.ClientRepository,
	verifier ports.CredentialVerifier,
	admin AdminCredential,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		clients:   clients,
		verifier:  verifier,
		admin:     admin,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login checks the admin credential first (identifier compared
// case-insensitively, password literally), then falls back to a client
// lookup by case-insensitive exact name. All failures collapse into
// domain.ErrInvalidCredentials so callers cannot enumerate client names.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.Session, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if strings.EqualFold(identifier, s.admin.Username) && password == s.admin.Password {
		token, err := s.generateToken(s.admin.Username, domain.RoleAdmin, "")
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("role", domain.RoleAdmin).Msg("login succeeded")
		return &ports.Session{Token: token, Role: domain.RoleAdmin, Name: s.admin.Username}, nil
	}

	client, err := s.clients.FindByName(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifier.Verify(client.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.clients.RecordLogin(ctx, client.ID); err != nil {
		s.log.Warn().Err(err).Str("client_id", client.ID).Msg("failed to stamp last login")
	}

	token, err := s.generateToken(client.Name, domain.RoleClient, client.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", domain.RoleClient).Str("client_id", client.ID).Msg("login succeeded")
	return &ports.Session{Token: token, Role: domain.RoleClient, ClientID: client.ID, Name: client.Name}, nil
}

func (s *AuthService) generateToken(name, role, clientID string) (string, error) {
	claims := jwt.MapClaims{
		"username":  name,
		"role":      role,
		"client_id": clientID,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
