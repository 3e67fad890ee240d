// Package response holds the wire shapes the schema promises. Field names
// follow the GraphQL contract (json tags drive graphql-go field
// resolution).
package response

type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Password carries the bcrypt hash; plaintext is never stored or
	// returned anywhere.
	Password string `json:"password"`
}

type AuthResponse struct {
	UserID   string `json:"userId"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type EventResponse struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Date        string        `json:"date"`
	Creator     *UserResponse `json:"creator"`
}

type BookingResponse struct {
	ID        string         `json:"_id"`
	Event     *EventResponse `json:"event"`
	User      *UserResponse  `json:"user"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}
