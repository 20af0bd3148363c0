package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clienteflow_backend/internal/models"
)

// SessionRepository defines the interface for login-session database operations.
type SessionRepository interface {
	CreateSession(executor SQLExecutor, session *models.Session) error
	GetSessionByID(id string) (*models.Session, error)
	DeleteSession(executor SQLExecutor, id string) error
	DeleteExpiredSessions(executor SQLExecutor, before time.Time) error
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// CreateSession inserts a new session into the database.
func (r *sessionRepository) CreateSession(executor SQLExecutor, session *models.Session) error {
	query := `INSERT INTO sessions (id, username, created_at, expires_at) VALUES (?, ?, ?, ?)`
	_, err := executor.Exec(query,
		session.ID, session.Username, formatTime(session.CreatedAt), formatTime(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("%w: creating session: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetSessionByID retrieves a session by its ID.
func (r *sessionRepository) GetSessionByID(id string) (*models.Session, error) {
	session := &models.Session{}
	var createdAt, expiresAt string
	query := `SELECT id, username, created_at, expires_at FROM sessions WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(&session.ID, &session.Username, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting session %s: %v", ErrDatabaseError, id, err)
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("%w: parsing session created_at: %v", ErrDatabaseError, err)
	}
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("%w: parsing session expires_at: %v", ErrDatabaseError, err)
	}
	return session, nil
}

// DeleteSession removes a session from the database.
func (r *sessionRepository) DeleteSession(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting session %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting session %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired before the given time.
func (r *sessionRepository) DeleteExpiredSessions(executor SQLExecutor, before time.Time) error {
	_, err := executor.Exec(`DELETE FROM sessions WHERE expires_at < ?`, formatTime(before))
	if err != nil {
		return fmt.Errorf("%w: deleting expired sessions: %v", ErrDatabaseError, err)
	}
	return nil
}
