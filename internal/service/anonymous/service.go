// Package anonymous issues the bearer tokens that tie API calls to a shopping
// session. Sessions are anonymous; signing in only changes the store contents.
package anonymous

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	DefaultTTL = 30 * 24 * time.Hour
	issuer     = "shopfront"
)

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		tokens: newTokenManager([]byte(secret), issuer),
		ttl:    ttl,
	}
}

// Token is a signed session token and the session it names.
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	SessionID   string    `json:"sessionId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Issue starts a new session.
func (s *Service) Issue(ctx context.Context) (Token, error) {
	return s.issueFor(uuid.NewString())
}

// Refresh re-issues a token for the session named by a still-valid token.
func (s *Service) Refresh(ctx context.Context, token string) (Token, error) {
	sessionID, err := s.LookupByToken(ctx, token)
	if err != nil {
		return Token{}, err
	}
	return s.issueFor(sessionID)
}

func (s *Service) issueFor(sessionID string) (Token, error) {
	signed, expiresAt, err := s.tokens.Issue(sessionID, s.ttl)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		SessionID:   sessionID,
		ExpiresAt:   expiresAt,
	}, nil
}

// LookupByToken returns the session id carried by token.
func (s *Service) LookupByToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
