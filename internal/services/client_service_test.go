package services

import (
	"testing"

	"clienteflow_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestClientServiceCreateNormalizes(t *testing.T) {
	clientSvc, _ := newTestServices(t)

	client, err := clientSvc.CreateClient(CreateClientRequest{
		Name:  "Ana Silva",
		Email: strPtr("ana@x.com"),
		Phone: strPtr("  11   9999-0000 "),
		Tags:  strPtr(" vip ,prioridade,, "),
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Silva", client.Name)
	require.Equal(t, "11 9999-0000", *client.Phone)
	require.Equal(t, "vip, prioridade", *client.Tags)
}

func TestClientServiceCreateValidation(t *testing.T) {
	clientSvc, _ := newTestServices(t)

	t.Run("name is required", func(t *testing.T) {
		_, err := clientSvc.CreateClient(CreateClientRequest{Name: "   "})
		require.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("invalid phone characters are rejected", func(t *testing.T) {
		_, err := clientSvc.CreateClient(CreateClientRequest{Name: "Ana", Phone: strPtr("call me: 9999")})
		require.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		_, err := clientSvc.CreateClient(CreateClientRequest{Name: "Ana", Email: strPtr("not-an-email")})
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("empty optional strings coerce to absent", func(t *testing.T) {
		client, err := clientSvc.CreateClient(CreateClientRequest{
			Name:  "Ana",
			Email: strPtr(""),
			Phone: strPtr("   "),
			Tags:  strPtr(" , "),
		})
		require.NoError(t, err)
		require.Nil(t, client.Email)
		require.Nil(t, client.Phone)
		require.Nil(t, client.Tags)
	})
}

func TestClientServicePartialUpdate(t *testing.T) {
	clientSvc, _ := newTestServices(t)

	created, err := clientSvc.CreateClient(CreateClientRequest{
		Name:  "Ana Silva",
		Email: strPtr("ana@x.com"),
		Tags:  strPtr("vip"),
	})
	require.NoError(t, err)

	t.Run("only supplied fields change", func(t *testing.T) {
		updated, err := clientSvc.UpdateClient(created.ID, UpdateClientRequest{Company: strPtr("Acme")})
		require.NoError(t, err)
		require.Equal(t, "Ana Silva", updated.Name)
		require.Equal(t, "ana@x.com", *updated.Email)
		require.Equal(t, "vip", *updated.Tags)
		require.Equal(t, "Acme", *updated.Company)
	})

	t.Run("supplied empty optional clears the field", func(t *testing.T) {
		updated, err := clientSvc.UpdateClient(created.ID, UpdateClientRequest{Email: strPtr("")})
		require.NoError(t, err)
		require.Nil(t, updated.Email)
	})

	t.Run("name cannot be cleared", func(t *testing.T) {
		_, err := clientSvc.UpdateClient(created.ID, UpdateClientRequest{Name: strPtr(" ")})
		require.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := clientSvc.UpdateClient(9999, UpdateClientRequest{Company: strPtr("Acme")})
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestClientServiceDeleteCascades(t *testing.T) {
	clientSvc, contactSvc := newTestServices(t)

	client, err := clientSvc.CreateClient(CreateClientRequest{Name: "Ana Silva"})
	require.NoError(t, err)

	_, err = contactSvc.CreateContact(CreateContactRequest{
		ClientID:  client.ID,
		Timestamp: "2024-03-01T10:00",
		Channel:   models.ChannelEmail,
		Subject:   "Follow-up",
	})
	require.NoError(t, err)

	require.NoError(t, clientSvc.DeleteClient(client.ID))

	contacts, err := contactSvc.GetContacts(models.ContactFilters{ClientID: int64Ptr(client.ID)})
	require.NoError(t, err)
	require.Empty(t, contacts)

	require.ErrorIs(t, clientSvc.DeleteClient(client.ID), ErrClientNotFound)
}

func TestClientServiceGetByIDIncludesContacts(t *testing.T) {
	clientSvc, contactSvc := newTestServices(t)

	client, err := clientSvc.CreateClient(CreateClientRequest{Name: "Ana Silva"})
	require.NoError(t, err)

	for _, timestamp := range []string{"2024-03-01T10:00", "2024-03-03T10:00", "2024-03-02T10:00"} {
		_, err = contactSvc.CreateContact(CreateContactRequest{
			ClientID:  client.ID,
			Timestamp: timestamp,
			Channel:   models.ChannelPhone,
			Subject:   "call",
		})
		require.NoError(t, err)
	}

	got, err := clientSvc.GetClientByID(client.ID)
	require.NoError(t, err)
	require.Len(t, got.Contacts, 3)
	require.True(t, got.Contacts[0].Timestamp.After(got.Contacts[1].Timestamp))
	require.True(t, got.Contacts[1].Timestamp.After(got.Contacts[2].Timestamp))

	_, err = clientSvc.GetClientByID(9999)
	require.ErrorIs(t, err, ErrClientNotFound)
}
