package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clienteflow_backend/internal/models"
	"clienteflow_backend/internal/repositories"
)

// --- Custom Service Errors for Contact ---
var (
	ErrContactNotFound          = errors.New("contact not found")
	ErrClientForContactNotFound = errors.New("client specified for contact not found")
)

const dateLayout = "2006-01-02"

// timestampLayouts are the accepted input formats for contact timestamps.
// Naive values are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// --- Contact DTOs ---
type CreateContactRequest struct {
	ClientID        int64   `json:"client_id" binding:"required"`
	Timestamp       string  `json:"timestamp" binding:"required"`
	Channel         string  `json:"channel" binding:"required"`
	Subject         string  `json:"subject" binding:"required"`
	Notes           *string `json:"notes"`
	NextContactDate *string `json:"next_contact_date"` // YYYY-MM-DD
}

// UpdateContactRequest carries partial update semantics: only non-nil fields
// are validated and applied.
type UpdateContactRequest struct {
	ClientID        *int64  `json:"client_id"`
	Timestamp       *string `json:"timestamp"`
	Channel         *string `json:"channel"`
	Subject         *string `json:"subject"`
	Notes           *string `json:"notes"`
	NextContactDate *string `json:"next_contact_date"`
}

// --- ContactService Interface ---
type ContactService interface {
	CreateContact(req CreateContactRequest) (*models.Contact, error)
	GetContactByID(contactID int64) (*models.Contact, error)
	GetContacts(filters models.ContactFilters) ([]models.Contact, error)
	UpdateContact(contactID int64, req UpdateContactRequest) (*models.Contact, error)
	DeleteContact(contactID int64) error
}

// --- contactService Implementation ---
type contactService struct {
	contactRepo repositories.ContactRepository
	clientRepo  repositories.ClientRepository
	db          *sql.DB
}

// NewContactService creates a new instance of ContactService.
func NewContactService(contactRepo repositories.ContactRepository, clientRepo repositories.ClientRepository, db *sql.DB) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		clientRepo:  clientRepo,
		db:          db,
	}
}

// parseTimestamp parses a contact timestamp in any accepted layout.
func parseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp: %q", ErrInvalidDateFormat, value)
}

// normalizeNextContactDate coerces empty input to absent and validates the
// YYYY-MM-DD layout.
func normalizeNextContactDate(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return nil, fmt.Errorf("%w: next_contact_date: %q", ErrInvalidDateFormat, trimmed)
	}
	return &trimmed, nil
}

// checkNextContactDate enforces the cross-field rule: a next contact date,
// when present, must not be earlier than the date portion of the timestamp.
// It runs only after the individual fields passed.
func checkNextContactDate(timestamp time.Time, nextContactDate *string) error {
	if nextContactDate == nil {
		return nil
	}
	if *nextContactDate < timestamp.UTC().Format(dateLayout) {
		return fmt.Errorf("%w: next_contact_date %s is before %s",
			ErrInvalidNextContactDate, *nextContactDate, timestamp.UTC().Format(dateLayout))
	}
	return nil
}

func (s *contactService) CreateContact(req CreateContactRequest) (*models.Contact, error) {
	if req.ClientID == 0 {
		return nil, fmt.Errorf("%w: client_id", ErrMissingRequiredField)
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject", ErrMissingRequiredField)
	}
	if !models.IsValidChannel(req.Channel) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, req.Channel)
	}

	timestamp, err := parseTimestamp(req.Timestamp)
	if err != nil {
		return nil, err
	}
	nextContactDate, err := normalizeNextContactDate(req.NextContactDate)
	if err != nil {
		return nil, err
	}
	if err := checkNextContactDate(timestamp, nextContactDate); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %d", ErrClientForContactNotFound, req.ClientID)
		}
		return nil, fmt.Errorf("failed to check client for contact: %w", err)
	}

	contact := &models.Contact{
		ClientID:        req.ClientID,
		Timestamp:       timestamp,
		Channel:         req.Channel,
		Subject:         subject,
		Notes:           req.Notes,
		NextContactDate: nextContactDate,
	}

	id, err := s.contactRepo.CreateContact(s.db, contact)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: client %d", ErrClientForContactNotFound, req.ClientID)
		}
		return nil, fmt.Errorf("failed to create contact in repository: %w", err)
	}
	return s.contactRepo.GetContactByID(id)
}

func (s *contactService) GetContactByID(contactID int64) (*models.Contact, error) {
	contact, err := s.contactRepo.GetContactByID(contactID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact by ID: %w", err)
	}
	return contact, nil
}

func (s *contactService) GetContacts(filters models.ContactFilters) ([]models.Contact, error) {
	if filters.Channel != nil && *filters.Channel != "" && !models.IsValidChannel(*filters.Channel) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, *filters.Channel)
	}
	contacts, err := s.contactRepo.GetContacts(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact applies a partial update. The next-contact-date rule is
// re-checked against the merged record, using stored values for any field not
// present in the payload.
func (s *contactService) UpdateContact(contactID int64, req UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.GetContactByID(contactID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to find contact for update: %w", err)
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.GetClientByID(*req.ClientID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: client %d", ErrClientForContactNotFound, *req.ClientID)
			}
			return nil, fmt.Errorf("failed to check client for contact: %w", err)
		}
		contact.ClientID = *req.ClientID
	}
	if req.Timestamp != nil {
		timestamp, err := parseTimestamp(*req.Timestamp)
		if err != nil {
			return nil, err
		}
		contact.Timestamp = timestamp
	}
	if req.Channel != nil {
		if !models.IsValidChannel(*req.Channel) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, *req.Channel)
		}
		contact.Channel = *req.Channel
	}
	if req.Subject != nil {
		subject := strings.TrimSpace(*req.Subject)
		if subject == "" {
			return nil, fmt.Errorf("%w: subject", ErrMissingRequiredField)
		}
		contact.Subject = subject
	}
	if req.Notes != nil {
		contact.Notes = req.Notes
	}
	if req.NextContactDate != nil {
		nextContactDate, err := normalizeNextContactDate(req.NextContactDate)
		if err != nil {
			return nil, err
		}
		contact.NextContactDate = nextContactDate
	}

	if err := checkNextContactDate(contact.Timestamp, contact.NextContactDate); err != nil {
		return nil, err
	}

	if err := s.contactRepo.UpdateContact(s.db, contact); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: client %d", ErrClientForContactNotFound, contact.ClientID)
		}
		return nil, fmt.Errorf("failed to update contact in repository: %w", err)
	}
	return s.contactRepo.GetContactByID(contactID)
}

func (s *contactService) DeleteContact(contactID int64) error {
	if err := s.contactRepo.DeleteContact(s.db, contactID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact in repository: %w", err)
	}
	return nil
}
