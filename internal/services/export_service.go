package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"clienteflow_backend/internal/models"
	"clienteflow_backend/pkg/utils"
)

// CSV export over already-filtered views. Field order follows the data model;
// optional fields render as empty text. The source records are never mutated.

var clientCSVHeader = []string{
	"id", "name", "email", "phone", "company", "role", "tags", "notes", "created_at", "updated_at",
}

var contactCSVHeader = []string{
	"id", "client_id", "client_name", "timestamp", "channel", "subject", "notes", "next_contact_date", "created_at",
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ClientsToCSV serializes a client list to CSV text with a header row.
func ClientsToCSV(clients []models.Client) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(clientCSVHeader); err != nil {
		return "", fmt.Errorf("failed to write client CSV header: %w", err)
	}
	for _, client := range clients {
		record := []string{
			utils.Int64ToStr(client.ID),
			client.Name,
			derefOrEmpty(client.Email),
			derefOrEmpty(client.Phone),
			derefOrEmpty(client.Company),
			derefOrEmpty(client.Role),
			derefOrEmpty(client.Tags),
			derefOrEmpty(client.Notes),
			client.CreatedAt.UTC().Format(time.RFC3339),
			client.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write client CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush client CSV: %w", err)
	}
	return buf.String(), nil
}

// ContactsToCSV serializes a contact list to CSV text with a header row.
func ContactsToCSV(contacts []models.Contact) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(contactCSVHeader); err != nil {
		return "", fmt.Errorf("failed to write contact CSV header: %w", err)
	}
	for _, contact := range contacts {
		record := []string{
			utils.Int64ToStr(contact.ID),
			utils.Int64ToStr(contact.ClientID),
			contact.ClientName,
			contact.Timestamp.UTC().Format(time.RFC3339),
			contact.Channel,
			contact.Subject,
			derefOrEmpty(contact.Notes),
			derefOrEmpty(contact.NextContactDate),
			contact.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write contact CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush contact CSV: %w", err)
	}
	return buf.String(), nil
}
