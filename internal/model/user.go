package model

import "time"

// User is an account participating in the couple pairing.
type User struct {
	// ID is the unique identifier for this user.
	ID string `json:"id" db:"id"`

	// Email is the login address.
	Email string `json:"email" db:"email"`

	// Name is the display name.
	Name string `json:"name" db:"name"`

	// PartnerID links to the single counterpart user, or nil when the
	// account is not paired. The link is intended to be symmetric but is
	// maintained externally; this pipeline only reads it.
	PartnerID *string `json:"partner_id,omitempty" db:"partner_id"`

	// PartnerNotify is the user preference for receiving partner
	// notifications on a live channel. It never suppresses the durable
	// notification record.
	PartnerNotify bool `json:"partner_notify" db:"partner_notify"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PushToken is a device push registration for a user. One row per user;
// re-registration replaces the previous token.
type PushToken struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Platform  string    `json:"platform" db:"platform"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
