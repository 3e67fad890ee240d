package graphql

import (
	"github.com/graphql-go/graphql"

	"event-booking/internal/data/entity"
	"event-booking/internal/dto/request"
)

func (s *Schema) resolveEvents(p graphql.ResolveParams) (interface{}, error) {
	return s.service.Event.GetEvents(p.Context,
		stringArg(p, "searchTerm"), intArg(p, "skip"), intArg(p, "limit"))
}

func (s *Schema) resolveGetUserEvents(p graphql.ResolveParams) (interface{}, error) {
	return s.service.Event.GetUserEvents(p.Context, stringArg(p, "userId"))
}

func (s *Schema) resolveCreateEvent(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	in := objectArg(p, "eventInput")
	input := &request.EventInput{
		Title:       stringField(in, "title"),
		Description: stringField(in, "description"),
		Price:       floatField(in, "price"),
		Date:        stringField(in, "date"),
	}
	return s.service.Event.CreateEvent(p.Context, caller, input)
}

func (s *Schema) resolveUpdateEvent(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	in := objectArg(p, "eventInput")
	input := &request.UpdateEventInput{
		Title:       optStringField(in, "title"),
		Description: optStringField(in, "description"),
		Price:       optFloatField(in, "price"),
		Date:        optStringField(in, "date"),
	}
	return s.service.Event.UpdateEvent(p.Context, caller, stringArg(p, "eventId"), input)
}

func (s *Schema) resolveDeleteEvent(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	return s.service.Event.DeleteEvent(p.Context, caller, stringArg(p, "eventId"))
}
