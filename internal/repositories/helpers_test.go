package repositories

import (
	"database/sql"
	"testing"
	"time"

	"clienteflow_backend/internal/database"
	"clienteflow_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func mustCreateClient(t *testing.T, db *sql.DB, repo ClientRepository, client models.Client) *models.Client {
	t.Helper()
	_, err := repo.CreateClient(db, &client)
	require.NoError(t, err)
	return &client
}

func mustCreateContact(t *testing.T, db *sql.DB, repo ContactRepository, contact models.Contact) *models.Contact {
	t.Helper()
	_, err := repo.CreateContact(db, &contact)
	require.NoError(t, err)
	return &contact
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}
