package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Date        time.Time `db:"date"`
	// CreatorID is immutable after creation.
	CreatorID uuid.UUID `db:"creator_id"`

	// Creator is populated by the *WithCreator repository queries.
	Creator *User
}
