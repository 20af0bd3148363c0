package services

import (
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clienteflow_backend/internal/models"
	"clienteflow_backend/internal/repositories"
	"clienteflow_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// AuthConfig carries the shared credential pair and token settings.
type AuthConfig struct {
	Username   string
	Password   string
	JWTSecret  string
	SessionTTL time.Duration
}

// --- Auth DTOs ---
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	Logout(token string) error
	ValidateSession(token string) (*models.Session, error)
}

// --- authService Implementation ---
// The single shared credential pair comes from configuration. Authentication
// state lives in session rows, never in an ambient logged-in flag: a session
// is created on login, checked on every request and removed on logout.
type authService struct {
	sessionRepo  repositories.SessionRepository
	db           *sql.DB
	username     string
	passwordHash []byte
	jwtSecret    []byte
	sessionTTL   time.Duration
}

// NewAuthService creates a new instance of AuthService. The configured shared
// password is hashed once at construction and never held in plain text.
func NewAuthService(sessionRepo repositories.SessionRepository, db *sql.DB, cfg AuthConfig) (AuthService, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash configured password: %w", err)
	}
	return &authService{
		sessionRepo:  sessionRepo,
		db:           db,
		username:     cfg.Username,
		passwordHash: passwordHash,
		jwtSecret:    []byte(cfg.JWTSecret),
		sessionTTL:   cfg.SessionTTL,
	}, nil
}

// Login checks the credentials against the configured pair and, on success,
// creates a session row and returns a signed token carrying its ID.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		return nil, ErrInvalidCredentials
	}

	// Opportunistic cleanup of stale sessions.
	if err := s.sessionRepo.DeleteExpiredSessions(s.db, time.Now()); err != nil {
		utils.LogError(err, "Login: failed to clean up expired sessions")
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		Username:  req.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.CreateSession(s.db, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := utils.GenerateSessionToken(s.jwtSecret, session.ID, session.Username, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		Token:     token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ValidateSession verifies the token signature and then checks that the
// session row is still live. A revoked or expired session fails even while
// the token itself has not expired.
func (s *authService) ValidateSession(token string) (*models.Session, error) {
	claims, err := utils.ParseSessionToken(s.jwtSecret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	session, err := s.sessionRepo.GetSessionByID(claims.SessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.sessionRepo.DeleteSession(s.db, session.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			utils.LogError(err, "ValidateSession: failed to remove expired session")
		}
		return nil, ErrInvalidSession
	}
	return session, nil
}

// Logout invalidates the session behind the given token.
func (s *authService) Logout(token string) error {
	session, err := s.ValidateSession(token)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteSession(s.db, session.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidSession
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
