// Package auth authenticates the single sales operator and issues access
// tokens for the rest of the API.
package auth

import (
	"context"
	"strings"
	"time"

	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service verifies operator credentials against the configured hash and
// signs short-lived access tokens.
type Service struct {
	cfg config.AuthServiceConfig
	log *logger.Logger
}

// NewService creates the auth service.
func NewService(cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// LoginResult carries the signed token back to the handler.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Login checks the email/password pair. Both failure modes return the
// same unauthorized error so responses don't reveal which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.EqualFold(email, s.cfg.GetOperatorEmail()) {
		s.log.AuthEvent("login", email, false, "unknown operator")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.GetOperatorPasswordHash()), []byte(password)); err != nil {
		s.log.AuthEvent("login", email, false, "password mismatch")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	expiresAt := time.Now().Add(s.cfg.GetAccessTokenTTL())
	token, err := s.signJWT(email, expiresAt)
	if err != nil {
		return nil, apperr.Internal("could not sign access token")
	}

	s.log.AuthEvent("login", email, true, "")
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) signJWT(email string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"type": "access",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
