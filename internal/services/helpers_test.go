package services

import (
	"database/sql"
	"testing"

	"clienteflow_backend/internal/database"
	"clienteflow_backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestServices wires real repositories over an in-memory database.
func newTestServices(t *testing.T) (ClientService, ContactService) {
	t.Helper()
	db := newTestDB(t)
	clientRepo := repositories.NewClientRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	return NewClientService(clientRepo, contactRepo, db), NewContactService(contactRepo, clientRepo, db)
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
