package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clienteflow_backend/internal/models"
	"clienteflow_backend/internal/repositories"
	"clienteflow_backend/pkg/utils"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound = errors.New("client not found")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Role    *string `json:"role"`
	Tags    *string `json:"tags"`
	Notes   *string `json:"notes"`
}

// UpdateClientRequest carries partial update semantics: only non-nil fields
// are validated and applied. A supplied empty optional clears the field.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Role    *string `json:"role"`
	Tags    *string `json:"tags"`
	Notes   *string `json:"notes"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	GetClients(filters models.ClientFilters) ([]models.Client, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID int64) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo  repositories.ClientRepository
	contactRepo repositories.ContactRepository
	db          *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clientRepo repositories.ClientRepository, contactRepo repositories.ContactRepository, db *sql.DB) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		contactRepo: contactRepo,
		db:          db,
	}
}

// normalizeEmail coerces empty input to absent and validates the remainder.
func normalizeEmail(email *string) (*string, error) {
	if email == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil, nil
	}
	if !utils.IsValidEmail(trimmed) {
		return nil, fmt.Errorf("%w: email: %q", ErrInvalidEmail, trimmed)
	}
	return &trimmed, nil
}

// normalizePhone collapses whitespace, coerces empty input to absent and
// checks the allowed character set.
func normalizePhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	normalized := utils.NormalizePhone(*phone)
	if normalized == "" {
		return nil, nil
	}
	if !utils.IsValidPhone(normalized) {
		return nil, fmt.Errorf("%w: phone: %q", ErrInvalidPhone, normalized)
	}
	return &normalized, nil
}

// normalizeTags never errors, only normalizes. Empty results become absent.
func normalizeTags(tags *string) *string {
	if tags == nil {
		return nil
	}
	return utils.NewNullString(utils.NormalizeTags(*tags))
}

func normalizeOptionalText(v *string) *string {
	if v == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*v))
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: normalizeOptionalText(req.Company),
		Role:    normalizeOptionalText(req.Role),
		Tags:    normalizeTags(req.Tags),
		Notes:   req.Notes,
	}

	id, err := s.clientRepo.CreateClient(s.db, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(id)
}

// GetClientByID returns the client together with its contacts, newest first.
// The contact list is fetched with an explicit query, never by lazy traversal.
func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}

	contacts, err := s.contactRepo.GetContacts(models.ContactFilters{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts for client %d: %w", clientID, err)
	}
	client.Contacts = contacts
	return client, nil
}

func (s *clientService) GetClients(filters models.ClientFilters) ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
		}
		client.Name = name
	}
	if req.Email != nil {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return nil, err
		}
		client.Email = email
	}
	if req.Phone != nil {
		phone, err := normalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		client.Phone = phone
	}
	if req.Company != nil {
		client.Company = normalizeOptionalText(req.Company)
	}
	if req.Role != nil {
		client.Role = normalizeOptionalText(req.Role)
	}
	if req.Tags != nil {
		client.Tags = normalizeTags(req.Tags)
	}
	if req.Notes != nil {
		client.Notes = utils.NewNullString(*req.Notes)
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(clientID)
}

// DeleteClient removes the client and, through the cascade constraint, all of
// its contacts in one atomic transaction.
func (s *clientService) DeleteClient(clientID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.clientRepo.DeleteClient(tx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client in repository: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit client delete: %w", err)
	}
	return nil
}
