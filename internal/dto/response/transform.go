package response

import (
	"time"

	"event-booking/internal/data/entity"
)

// Event dates render as the ISO timestamp with a space in place of the
// date/time separator; booking timestamps render as locale date strings.
// Pure mapping only, no validation.

const (
	eventDateLayout        = "2006-01-02 15:04:05.000Z07:00"
	bookingTimestampLayout = "Mon Jan 02 2006"
)

func FormatEventDate(t time.Time) string {
	return t.UTC().Format(eventDateLayout)
}

func FormatBookingTimestamp(t time.Time) string {
	return t.Format(bookingTimestampLayout)
}

func ToUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Password: user.PasswordHash,
	}
}

func ToEventResponse(event *entity.Event) *EventResponse {
	if event == nil {
		return nil
	}
	return &EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Price:       event.Price,
		Date:        FormatEventDate(event.Date),
		Creator:     ToUserResponse(event.Creator),
	}
}

func ToEventResponses(events []*entity.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, ToEventResponse(event))
	}
	return out
}

func ToBookingResponse(booking *entity.Booking) *BookingResponse {
	if booking == nil {
		return nil
	}
	return &BookingResponse{
		ID:        booking.ID.String(),
		Event:     ToEventResponse(booking.Event),
		User:      ToUserResponse(booking.User),
		CreatedAt: FormatBookingTimestamp(booking.CreatedAt),
		UpdatedAt: FormatBookingTimestamp(booking.UpdatedAt),
	}
}

func ToBookingResponses(bookings []*entity.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, ToBookingResponse(booking))
	}
	return out
}
