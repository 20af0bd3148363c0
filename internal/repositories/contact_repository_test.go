package repositories

import (
	"testing"

	"clienteflow_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestContactRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	clientRepo := NewClientRepository(db)
	contactRepo := NewContactRepository(db)

	client := mustCreateClient(t, db, clientRepo, models.Client{Name: "Ana Silva"})
	contact := mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID:        client.ID,
		Timestamp:       ts(t, "2024-03-01T10:00:00Z"),
		Channel:         models.ChannelEmail,
		Subject:         "Follow-up",
		NextContactDate: strPtr("2024-03-05"),
	})

	got, err := contactRepo.GetContactByID(contact.ID)
	require.NoError(t, err)
	require.Equal(t, client.ID, got.ClientID)
	require.Equal(t, "Ana Silva", got.ClientName)
	require.Equal(t, ts(t, "2024-03-01T10:00:00Z"), got.Timestamp)
	require.Equal(t, "2024-03-05", *got.NextContactDate)
	require.Nil(t, got.Notes)
}

func TestContactRepositoryCreateUnknownClient(t *testing.T) {
	db := newTestDB(t)
	contactRepo := NewContactRepository(db)

	_, err := contactRepo.CreateContact(db, &models.Contact{
		ClientID:  12345,
		Timestamp: ts(t, "2024-03-01T10:00:00Z"),
		Channel:   models.ChannelPhone,
		Subject:   "Nope",
	})
	require.ErrorIs(t, err, ErrForeignKey)
}

func TestContactRepositoryGetContactsFilters(t *testing.T) {
	db := newTestDB(t)
	clientRepo := NewClientRepository(db)
	contactRepo := NewContactRepository(db)

	ana := mustCreateClient(t, db, clientRepo, models.Client{Name: "Ana Silva"})
	bob := mustCreateClient(t, db, clientRepo, models.Client{Name: "Bob Jones"})

	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: ana.ID, Timestamp: ts(t, "2024-01-09T23:59:00Z"), Channel: models.ChannelPhone, Subject: "day before",
	})
	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: ana.ID, Timestamp: ts(t, "2024-01-10T00:30:00Z"), Channel: models.ChannelEmail, Subject: "early",
	})
	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: bob.ID, Timestamp: ts(t, "2024-01-10T23:59:00Z"), Channel: models.ChannelMeeting, Subject: "late",
	})
	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: bob.ID, Timestamp: ts(t, "2024-01-11T00:00:00Z"), Channel: models.ChannelEmail, Subject: "day after",
	})

	t.Run("no filters returns all, newest first", func(t *testing.T) {
		contacts, err := contactRepo.GetContacts(models.ContactFilters{})
		require.NoError(t, err)
		require.Len(t, contacts, 4)
		require.Equal(t, "day after", contacts[0].Subject)
		require.Equal(t, "day before", contacts[3].Subject)
	})

	t.Run("boundary dates include the whole day", func(t *testing.T) {
		day := ts(t, "2024-01-10T00:00:00Z")
		contacts, err := contactRepo.GetContacts(models.ContactFilters{DateFrom: &day, DateTo: &day})
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		require.Equal(t, "late", contacts[0].Subject)
		require.Equal(t, "early", contacts[1].Subject)
	})

	t.Run("client filter is exact", func(t *testing.T) {
		contacts, err := contactRepo.GetContacts(models.ContactFilters{ClientID: &ana.ID})
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		for _, contact := range contacts {
			require.Equal(t, ana.ID, contact.ClientID)
			require.Equal(t, "Ana Silva", contact.ClientName)
		}
	})

	t.Run("channel filter is exact", func(t *testing.T) {
		channel := models.ChannelEmail
		contacts, err := contactRepo.GetContacts(models.ContactFilters{Channel: &channel})
		require.NoError(t, err)
		require.Len(t, contacts, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		channel := models.ChannelEmail
		contacts, err := contactRepo.GetContacts(models.ContactFilters{ClientID: &bob.ID, Channel: &channel})
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		require.Equal(t, "day after", contacts[0].Subject)
	})
}

func TestContactRepositoryCascadeDelete(t *testing.T) {
	db := newTestDB(t)
	clientRepo := NewClientRepository(db)
	contactRepo := NewContactRepository(db)

	client := mustCreateClient(t, db, clientRepo, models.Client{Name: "Ana Silva"})
	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: client.ID, Timestamp: ts(t, "2024-03-01T10:00:00Z"), Channel: models.ChannelPhone, Subject: "first",
	})
	mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: client.ID, Timestamp: ts(t, "2024-03-02T10:00:00Z"), Channel: models.ChannelEmail, Subject: "second",
	})

	require.NoError(t, clientRepo.DeleteClient(db, client.ID))

	contacts, err := contactRepo.GetContacts(models.ContactFilters{ClientID: &client.ID})
	require.NoError(t, err)
	require.Empty(t, contacts)
}

func TestContactRepositoryUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	clientRepo := NewClientRepository(db)
	contactRepo := NewContactRepository(db)

	client := mustCreateClient(t, db, clientRepo, models.Client{Name: "Ana Silva"})
	contact := mustCreateContact(t, db, contactRepo, models.Contact{
		ClientID: client.ID, Timestamp: ts(t, "2024-03-01T10:00:00Z"), Channel: models.ChannelPhone, Subject: "before",
	})

	contact.Subject = "after"
	contact.Channel = models.ChannelMeeting
	require.NoError(t, contactRepo.UpdateContact(db, contact))

	got, err := contactRepo.GetContactByID(contact.ID)
	require.NoError(t, err)
	require.Equal(t, "after", got.Subject)
	require.Equal(t, models.ChannelMeeting, got.Channel)

	require.NoError(t, contactRepo.DeleteContact(db, contact.ID))
	_, err = contactRepo.GetContactByID(contact.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, contactRepo.DeleteContact(db, contact.ID), ErrNotFound)
}
