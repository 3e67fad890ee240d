package graphql

import (
	"github.com/graphql-go/graphql"

	"event-booking/internal/data/entity"
)

func (s *Schema) resolveBookings(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	return s.service.Booking.GetBookings(p.Context, caller)
}

func (s *Schema) resolveBookEvent(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	return s.service.Booking.BookEvent(p.Context, caller, stringArg(p, "eventId"))
}

func (s *Schema) resolveCancelBooking(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	return s.service.Booking.CancelBooking(p.Context, caller, stringArg(p, "bookingId"))
}
