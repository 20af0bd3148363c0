package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clienteflow_backend/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClients(filters models.ClientFilters) ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

// scanClientRow scans a single client row.
func scanClientRow(row scanner) (*models.Client, error) {
	client := &models.Client{}
	var createdAt, updatedAt string
	err := row.Scan(
		&client.ID, &client.Name, &client.Email, &client.Phone, &client.Company,
		&client.Role, &client.Tags, &client.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing client created_at: %v", err)
	}
	if client.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing client updated_at: %v", err)
	}
	return client, nil
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, email, phone, company, role, tags, notes, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	currentTime := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}

	result, err := executor.Exec(query,
		client.Name, client.Email, client.Phone, client.Company, client.Role,
		client.Tags, client.Notes, formatTime(client.CreatedAt), formatTime(client.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: getting created client id: %v", ErrDatabaseError, err)
	}
	client.ID = id
	return id, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT id, name, email, phone, company, role, tags, notes, created_at, updated_at
	          FROM clients WHERE id = ?`

	client, err := scanClientRow(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClients retrieves clients matching the given filters, ordered by name.
// Absent filters impose no constraint; present filters are ANDed together.
func (r *clientRepository) GetClients(filters models.ClientFilters) ([]models.Client, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, email, phone, company, role, tags, notes, created_at, updated_at
	                          FROM clients`)

	var conditions []string
	var args []interface{}

	if filters.Search != nil && *filters.Search != "" {
		pattern := "%" + strings.ToLower(*filters.Search) + "%"
		conditions = append(conditions,
			`(LOWER(name) LIKE ? OR LOWER(IFNULL(email, '')) LIKE ? OR LOWER(IFNULL(phone, '')) LIKE ?
			  OR LOWER(IFNULL(company, '')) LIKE ? OR LOWER(IFNULL(tags, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if filters.Company != nil && *filters.Company != "" {
		conditions = append(conditions, `LOWER(IFNULL(company, '')) LIKE ?`)
		args = append(args, "%"+strings.ToLower(*filters.Company)+"%")
	}
	if filters.Tags != nil && *filters.Tags != "" {
		conditions = append(conditions, `LOWER(IFNULL(tags, '')) LIKE ?`)
		args = append(args, "%"+strings.ToLower(*filters.Tags)+"%")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClientRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient updates an existing client in the database and refreshes updated_at.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            name = ?, email = ?, phone = ?, company = ?, role = ?, tags = ?, notes = ?, updated_at = ?
	          WHERE id = ?`

	client.UpdatedAt = time.Now().UTC()
	result, err := executor.Exec(query,
		client.Name, client.Email, client.Phone, client.Company, client.Role,
		client.Tags, client.Notes, formatTime(client.UpdatedAt), client.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client from the database. Dependent contacts are
// removed in the same statement through the ON DELETE CASCADE constraint.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
