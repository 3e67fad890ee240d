// Package request holds the mutation input shapes defined by the schema.
// Validation tags are interpreted by internal/validation.
package request

type UserInput struct {
	Username string `json:"username" validate:"required,trimmed_min=3"`
	Email    string `json:"email" validate:"required,email_basic"`
	Password string `json:"password" validate:"required,trimmed_min=6"`
}

// UpdateUserInput fields are optional; only provided fields change.
// Email is deliberately absent: it is immutable post-creation.
type UpdateUserInput struct {
	Username *string `json:"username" validate:"omitempty,trimmed_min=3"`
	Password *string `json:"password" validate:"omitempty,trimmed_min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email_basic"`
	Password string `json:"password" validate:"required,trimmed_min=6"`
}

type EventInput struct {
	Title       string  `json:"title" validate:"required,trimmed_min=3,trimmed_max=200"`
	Description string  `json:"description" validate:"required,trimmed_min=10"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,dateparse"`
}

type UpdateEventInput struct {
	Title       *string  `json:"title" validate:"omitempty,trimmed_min=3,trimmed_max=200"`
	Description *string  `json:"description" validate:"omitempty,trimmed_min=10"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Date        *string  `json:"date" validate:"omitempty,dateparse"`
}
