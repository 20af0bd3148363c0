package models

import "time"

// Client represents a tracked business contact.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Company   *string   `json:"company,omitempty" db:"company"`
	Role      *string   `json:"role,omitempty" db:"role"`
	Tags      *string   `json:"tags,omitempty" db:"tags"` // normalized "a, b, c" form
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Contacts  []Contact `json:"contacts,omitempty"` // populated by GetClientByID only
}

// ClientFilters holds the optional filters for listing clients.
// Nil fields impose no constraint; non-nil filters are combined with AND.
type ClientFilters struct {
	Search  *string // case-insensitive substring over name, email, phone, company, tags
	Company *string // case-insensitive substring on company
	Tags    *string // case-insensitive substring on the normalized tags string
}
