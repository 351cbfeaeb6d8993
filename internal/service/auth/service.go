// Package auth runs the two-step sign-in: password form, then a one-time code.
// No identity provider is consulted; any non-empty credentials get a code.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/simulate"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoChallenge is returned when a code is submitted without a pending,
// unexpired challenge for the session.
var ErrNoChallenge = errors.New("no pending sign-in code")

const (
	codeLength         = 6
	DefaultDelay       = 1500 * time.Millisecond
	DefaultCodeTTL     = 10 * time.Minute
	DefaultMaxAttempts = 5
)

// Notifier delivers a code to the shopper.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// Session is what a successful verification writes to.
type Session interface {
	Login(ctx context.Context, user domain.User)
}

// Recorder receives sign-in events. telemetry.Metrics satisfies it.
type Recorder interface {
	OTPIssued()
	LoginResult(result string)
}

type Config struct {
	Delay       time.Duration
	CodeTTL     time.Duration
	MaxAttempts int
}

// Challenge is the public view of a pending code.
type Challenge struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type challenge struct {
	Challenge
	hash     []byte
	attempts int
}

type Service struct {
	cfg      Config
	notifier Notifier
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]*challenge
}

func New(cfg Config, notifier Notifier, logger *zap.Logger, recorder Recorder) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = DefaultCodeTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		cfg:      cfg,
		notifier: notifier,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
		pending:  make(map[string]*challenge),
	}
}

type nopRecorder struct{}

func (nopRecorder) OTPIssued()         {}
func (nopRecorder) LoginResult(string) {}

// RequestCode checks the password form, waits out the simulated round trip and
// sends a fresh code. A new request replaces any pending challenge.
func (s *Service) RequestCode(ctx context.Context, sessionID, email, password string) (Challenge, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Challenge{}, domain.NewValidationError("auth.request", "credentials", "Please enter email and password")
	}
	if err := simulate.Wait(ctx, s.cfg.Delay); err != nil {
		return Challenge{}, fmt.Errorf("request code: %w", err)
	}

	code, err := randomCode()
	if err != nil {
		return Challenge{}, fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return Challenge{}, fmt.Errorf("hash code: %w", err)
	}
	c := &challenge{
		Challenge: Challenge{
			ID:        uuid.NewString(),
			Email:     email,
			ExpiresAt: s.now().Add(s.cfg.CodeTTL),
		},
		hash: hash,
	}
	if err := s.notifier.SendOTP(ctx, email, code); err != nil {
		return Challenge{}, fmt.Errorf("send code: %w", err)
	}

	s.mu.Lock()
	s.sweepLocked()
	s.pending[sessionID] = c
	s.mu.Unlock()

	s.recorder.OTPIssued()
	return c.Challenge, nil
}

// Verify checks code against the pending challenge and, after the simulated
// round trip, signs the session in as a user named after the email's local part.
func (s *Service) Verify(ctx context.Context, sessionID, code string, sess Session) (domain.User, error) {
	code = strings.TrimSpace(code)
	if len(code) != codeLength || strings.Trim(code, "0123456789") != "" {
		return domain.User{}, domain.NewValidationError("auth.verify", "otp", "Please enter complete OTP")
	}

	s.mu.Lock()
	c, ok := s.pending[sessionID]
	expired := ok && !s.now().Before(c.ExpiresAt)
	if expired {
		delete(s.pending, sessionID)
	}
	s.mu.Unlock()
	switch {
	case expired:
		s.recorder.LoginResult("expired")
		return domain.User{}, ErrNoChallenge
	case !ok:
		s.recorder.LoginResult("no_challenge")
		return domain.User{}, ErrNoChallenge
	}

	if err := simulate.Wait(ctx, s.cfg.Delay); err != nil {
		return domain.User{}, fmt.Errorf("verify code: %w", err)
	}

	if bcrypt.CompareHashAndPassword(c.hash, []byte(code)) != nil {
		s.mu.Lock()
		c.attempts++
		if c.attempts >= s.cfg.MaxAttempts && s.pending[sessionID] == c {
			delete(s.pending, sessionID)
		}
		s.mu.Unlock()
		s.recorder.LoginResult("invalid")
		return domain.User{}, domain.NewValidationError("auth.verify", "otp", "Invalid OTP")
	}

	s.mu.Lock()
	if s.pending[sessionID] == c {
		delete(s.pending, sessionID)
	}
	s.mu.Unlock()

	user := domain.User{Email: c.Email, Name: localPart(c.Email), Phone: ""}
	sess.Login(context.WithoutCancel(ctx), user)
	s.recorder.LoginResult("success")
	s.logger.Info("signed in", zap.String("session_id", sessionID), zap.String("challenge_id", c.ID))
	return user, nil
}

// sweepLocked drops every expired challenge.
func (s *Service) sweepLocked() {
	now := s.now()
	for id, c := range s.pending {
		if !now.Before(c.ExpiresAt) {
			delete(s.pending, id)
		}
	}
}

// Pending reports the pending challenge for sessionID, if any.
func (s *Service) Pending(sessionID string) (Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[sessionID]
	if !ok || !s.now().Before(c.ExpiresAt) {
		return Challenge{}, false
	}
	return c.Challenge, true
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
