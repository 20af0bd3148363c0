package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clienteflow_backend/internal/models"
)

// ContactRepository defines the interface for contact-event database operations.
type ContactRepository interface {
	CreateContact(executor SQLExecutor, contact *models.Contact) (int64, error)
	GetContactByID(id int64) (*models.Contact, error)
	GetContacts(filters models.ContactFilters) ([]models.Contact, error)
	UpdateContact(executor SQLExecutor, contact *models.Contact) error
	DeleteContact(executor SQLExecutor, id int64) error
}

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactSelect = `SELECT c.id, c.client_id, cl.name, c.timestamp, c.channel, c.subject,
	       c.notes, c.next_contact_date, c.created_at
	FROM contacts c
	JOIN clients cl ON cl.id = c.client_id`

// scanContactRow scans a contact row joined with its owning client's name.
func scanContactRow(row scanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var timestamp, createdAt string
	err := row.Scan(
		&contact.ID, &contact.ClientID, &contact.ClientName, &timestamp, &contact.Channel,
		&contact.Subject, &contact.Notes, &contact.NextContactDate, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if contact.Timestamp, err = parseTime(timestamp); err != nil {
		return nil, fmt.Errorf("parsing contact timestamp: %v", err)
	}
	if contact.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing contact created_at: %v", err)
	}
	return contact, nil
}

// CreateContact inserts a new contact event into the database.
func (r *contactRepository) CreateContact(executor SQLExecutor, contact *models.Contact) (int64, error) {
	query := `INSERT INTO contacts (client_id, timestamp, channel, subject, notes, next_contact_date, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	result, err := executor.Exec(query,
		contact.ClientID, formatTime(contact.Timestamp), contact.Channel, contact.Subject,
		contact.Notes, contact.NextContactDate, formatTime(contact.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return 0, fmt.Errorf("%w: client %d: %v", ErrForeignKey, contact.ClientID, err)
		}
		return 0, fmt.Errorf("%w: creating contact: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: getting created contact id: %v", ErrDatabaseError, err)
	}
	contact.ID = id
	return id, nil
}

// GetContactByID retrieves a contact event by ID, including the client name.
func (r *contactRepository) GetContactByID(id int64) (*models.Contact, error) {
	contact, err := scanContactRow(r.db.QueryRow(contactSelect+` WHERE c.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting contact by ID %d: %v", ErrDatabaseError, id, err)
	}
	return contact, nil
}

// GetContacts retrieves contact events matching the given filters, newest first.
// Date bounds are inclusive over the whole boundary day.
func (r *contactRepository) GetContacts(filters models.ContactFilters) ([]models.Contact, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(contactSelect)

	var conditions []string
	var args []interface{}

	if filters.ClientID != nil {
		conditions = append(conditions, `c.client_id = ?`)
		args = append(args, *filters.ClientID)
	}
	if filters.DateFrom != nil {
		from := filters.DateFrom.UTC()
		startOfDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		conditions = append(conditions, `c.timestamp >= ?`)
		args = append(args, formatTime(startOfDay))
	}
	if filters.DateTo != nil {
		to := filters.DateTo.UTC()
		endOfDay := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		conditions = append(conditions, `c.timestamp <= ?`)
		args = append(args, formatTime(endOfDay))
	}
	if filters.Channel != nil && *filters.Channel != "" {
		conditions = append(conditions, `c.channel = ?`)
		args = append(args, *filters.Channel)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY c.timestamp DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying contacts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		contact, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning contact: %v", ErrDatabaseError, err)
		}
		contacts = append(contacts, *contact)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating contact rows: %v", ErrDatabaseError, err)
	}
	return contacts, nil
}

// UpdateContact updates an existing contact event. created_at is immutable.
func (r *contactRepository) UpdateContact(executor SQLExecutor, contact *models.Contact) error {
	query := `UPDATE contacts SET
	            client_id = ?, timestamp = ?, channel = ?, subject = ?, notes = ?, next_contact_date = ?
	          WHERE id = ?`

	result, err := executor.Exec(query,
		contact.ClientID, formatTime(contact.Timestamp), contact.Channel, contact.Subject,
		contact.Notes, contact.NextContactDate, contact.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("%w: client %d: %v", ErrForeignKey, contact.ClientID, err)
		}
		return fmt.Errorf("%w: updating contact ID %d: %v", ErrDatabaseError, contact.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating contact ID %d: %v", ErrDatabaseError, contact.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact event from the database.
func (r *contactRepository) DeleteContact(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting contact ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting contact ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
