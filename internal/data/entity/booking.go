package entity

import (
	"github.com/google/uuid"
)

// Booking links a user to an event they reserved. At most one booking
// exists per (user, event) pair.
type Booking struct {
	Base
	EventID uuid.UUID `db:"event_id"`
	UserID  uuid.UUID `db:"user_id"`

	// Event and User are populated by the detail queries.
	Event *Event
	User  *User
}
