package services

import (
	"strings"
	"testing"
	"time"

	"clienteflow_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestClientsToCSV(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	clients := []models.Client{
		{
			ID:        1,
			Name:      "Ana Silva",
			Email:     strPtr("ana@x.com"),
			Company:   strPtr("Acme, Inc."),
			Tags:      strPtr("vip, prioridade"),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:        2,
			Name:      "Bob Jones",
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}

	out, err := ClientsToCSV(clients)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "id,name,email,phone,company,role,tags,notes,created_at,updated_at", lines[0])

	// Fields containing the delimiter are quoted.
	require.Contains(t, lines[1], `"Acme, Inc."`)
	require.Contains(t, lines[1], `"vip, prioridade"`)
	require.Contains(t, lines[1], "2024-03-01T10:00:00Z")

	// Absent optionals render as empty text, never a null marker.
	require.Equal(t, "2,Bob Jones,,,,,,,2024-03-01T10:00:00Z,2024-03-01T10:00:00Z", lines[2])
}

func TestContactsToCSV(t *testing.T) {
	timestamp := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	contacts := []models.Contact{
		{
			ID:              7,
			ClientID:        1,
			ClientName:      "Ana Silva",
			Timestamp:       timestamp,
			Channel:         models.ChannelEmail,
			Subject:         "Follow-up",
			NextContactDate: strPtr("2024-03-05"),
			CreatedAt:       timestamp,
		},
		{
			ID:         8,
			ClientID:   1,
			ClientName: "Ana Silva",
			Timestamp:  timestamp,
			Channel:    models.ChannelPhone,
			Subject:    "Call, then email",
			CreatedAt:  timestamp,
		},
	}

	out, err := ContactsToCSV(contacts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "id,client_id,client_name,timestamp,channel,subject,notes,next_contact_date,created_at", lines[0])
	require.Equal(t, "7,1,Ana Silva,2024-03-01T10:00:00Z,email,Follow-up,,2024-03-05,2024-03-01T10:00:00Z", lines[1])
	require.Contains(t, lines[2], `"Call, then email"`)
}

func TestClientsToCSVEmptyList(t *testing.T) {
	out, err := ClientsToCSV(nil)
	require.NoError(t, err)
	require.Equal(t, "id,name,email,phone,company,role,tags,notes,created_at,updated_at\n", out)
}
