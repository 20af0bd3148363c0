package models

import "time"

// Allowed values for Contact.Channel.
const (
	ChannelPhone    = "phone"
	ChannelEmail    = "email"
	ChannelWhatsapp = "whatsapp"
	ChannelMeeting  = "meeting"
	ChannelOther    = "other"
)

// AllowedChannels lists the fixed channel enumeration in display order.
var AllowedChannels = []string{
	ChannelPhone,
	ChannelEmail,
	ChannelWhatsapp,
	ChannelMeeting,
	ChannelOther,
}

// IsValidChannel reports whether channel is a member of the fixed enumeration.
func IsValidChannel(channel string) bool {
	for _, c := range AllowedChannels {
		if c == channel {
			return true
		}
	}
	return false
}

// Contact represents a logged interaction with a client.
type Contact struct {
	ID              int64     `json:"id" db:"id"`
	ClientID        int64     `json:"client_id" db:"client_id"`
	ClientName      string    `json:"client_name,omitempty"` // joined from clients, not stored
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
	Channel         string    `json:"channel" db:"channel"`
	Subject         string    `json:"subject" db:"subject"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	NextContactDate *string   `json:"next_contact_date,omitempty" db:"next_contact_date"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ContactFilters holds the optional filters for listing contacts.
// Date bounds are inclusive over the whole boundary day.
type ContactFilters struct {
	ClientID *int64
	DateFrom *time.Time // compared against start of day
	DateTo   *time.Time // compared against end of day
	Channel  *string    // exact match
}
