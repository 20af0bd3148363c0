package repositories

import (
	"testing"
	"time"

	"clienteflow_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestClientRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	created := mustCreateClient(t, db, repo, models.Client{
		Name:  "Ana Silva",
		Email: strPtr("ana@x.com"),
		Phone: strPtr("11 9999-0000"),
		Tags:  strPtr("vip, prioridade"),
	})
	require.NotZero(t, created.ID)

	got, err := repo.GetClientByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Silva", got.Name)
	require.Equal(t, "ana@x.com", *got.Email)
	require.Equal(t, "vip, prioridade", *got.Tags)
	require.Nil(t, got.Company)
	require.False(t, got.CreatedAt.IsZero())
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestClientRepositoryGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	_, err := repo.GetClientByID(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepositoryGetClientsFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	mustCreateClient(t, db, repo, models.Client{Name: "Maria Souza", Email: strPtr("maria@corp.com"), Company: strPtr("Acme")})
	mustCreateClient(t, db, repo, models.Client{Name: "Bob Jones", Company: strPtr("MariaTech"), Tags: strPtr("vip")})
	mustCreateClient(t, db, repo, models.Client{Name: "Zed", Tags: strPtr("vip, lead")})

	t.Run("no filters matches all, ordered by name", func(t *testing.T) {
		clients, err := repo.GetClients(models.ClientFilters{})
		require.NoError(t, err)
		require.Len(t, clients, 3)
		require.Equal(t, "Bob Jones", clients[0].Name)
		require.Equal(t, "Maria Souza", clients[1].Name)
		require.Equal(t, "Zed", clients[2].Name)
	})

	t.Run("search is case-insensitive across fields", func(t *testing.T) {
		clients, err := repo.GetClients(models.ClientFilters{Search: strPtr("MARIA")})
		require.NoError(t, err)
		require.Len(t, clients, 2) // name match and company match
		require.Equal(t, "Bob Jones", clients[0].Name)
		require.Equal(t, "Maria Souza", clients[1].Name)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		clients, err := repo.GetClients(models.ClientFilters{Search: strPtr("maria"), Tags: strPtr("vip")})
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "Bob Jones", clients[0].Name)
	})

	t.Run("company filter is substring match", func(t *testing.T) {
		clients, err := repo.GetClients(models.ClientFilters{Company: strPtr("acme")})
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "Maria Souza", clients[0].Name)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		clients, err := repo.GetClients(models.ClientFilters{Search: strPtr("nobody")})
		require.NoError(t, err)
		require.Empty(t, clients)
	})
}

func TestClientRepositoryUpdateRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	past := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)
	created := mustCreateClient(t, db, repo, models.Client{
		Name:      "Ana Silva",
		CreatedAt: past,
		UpdatedAt: past,
	})

	created.Company = strPtr("Acme")
	require.NoError(t, repo.UpdateClient(db, created))

	got, err := repo.GetClientByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", *got.Company)
	require.Equal(t, past, got.CreatedAt)
	require.True(t, got.UpdatedAt.After(past))
}

func TestClientRepositoryUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	err := repo.UpdateClient(db, &models.Client{ID: 99, Name: "Ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	created := mustCreateClient(t, db, repo, models.Client{Name: "Ana Silva"})
	require.NoError(t, repo.DeleteClient(db, created.ID))

	_, err := repo.GetClientByID(created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, repo.DeleteClient(db, created.ID), ErrNotFound)
}
