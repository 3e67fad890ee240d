// Package graphql exposes the event-booking API: queries, mutations and
// subscriptions over a programmatically built schema, plus the HTTP
// transport in handler.go.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"event-booking/internal/pubsub"
	"event-booking/internal/usecase"
)

type Schema struct {
	schema  graphql.Schema
	service *usecase.Service
	bus     *pubsub.PubSub
	log     *zap.Logger
}

func NewSchema(service *usecase.Service, bus *pubsub.PubSub, log *zap.Logger) (*Schema, error) {
	s := &Schema{
		service: service,
		bus:     bus,
		log:     log.With(zap.String("component", "graphql")),
	}

	userType := defineUserType()
	authDataType := defineAuthDataType()
	eventType := defineEventType(userType)
	bookingType := defineBookingType(eventType, userType)

	userInputType := defineUserInputType()
	updateUserInputType := defineUpdateUserInputType()
	eventInputType := defineEventInputType()
	updateEventInputType := defineUpdateEventInputType()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(eventType)),
				Args: graphql.FieldConfigArgument{
					"searchTerm": &graphql.ArgumentConfig{
						Type:        graphql.String,
						Description: "Substring match on title or description",
					},
					"skip": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 0,
					},
					"limit": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 8,
					},
				},
				Resolve: s.resolveEvents,
			},
			"bookings": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(bookingType)),
				Resolve: authenticated(s.resolveBookings),
			},
			"getUserEvents": &graphql.Field{
				Type: graphql.NewList(eventType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: s.resolveGetUserEvents,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: authDataType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(userInputType),
					},
				},
				Resolve: s.resolveCreateUser,
			},
			"login": &graphql.Field{
				Type: authDataType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"password": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.resolveLogin,
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"updateUserInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(updateUserInputType),
					},
				},
				Resolve: authenticated(s.resolveUpdateUser),
			},
			"deleteUser": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: authenticated(s.resolveDeleteUser),
			},
			"createEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(eventInputType),
					},
				},
				Resolve: authenticated(s.resolveCreateEvent),
			},
			"updateEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"eventInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(updateEventInputType),
					},
				},
				Resolve: authenticated(s.resolveUpdateEvent),
			},
			"deleteEvent": &graphql.Field{
				Type: graphql.NewList(eventType),
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: authenticated(s.resolveDeleteEvent),
			},
			"bookEvent": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: authenticated(s.resolveBookEvent),
			},
			"cancelBooking": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"bookingId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: authenticated(s.resolveCancelBooking),
			},
		},
	})

	subscriptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"eventAdded": &graphql.Field{
				Type:      graphql.NewNonNull(eventType),
				Resolve:   resolveSubscriptionSource,
				Subscribe: s.subscribeTopic(pubsub.TopicEventAdded),
			},
			"bookingAdded": &graphql.Field{
				Type:      graphql.NewNonNull(bookingType),
				Resolve:   resolveSubscriptionSource,
				Subscribe: s.subscribeTopic(pubsub.TopicBookingAdded),
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:        queryType,
		Mutation:     mutationType,
		Subscription: subscriptionType,
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	s.schema = schema
	return s, nil
}

func (s *Schema) GetSchema() graphql.Schema {
	return s.schema
}

// resolveSubscriptionSource passes through the payload delivered by the
// topic bus; the services publish fully shaped responses.
func resolveSubscriptionSource(p graphql.ResolveParams) (interface{}, error) {
	return p.Source, nil
}

// subscribeTopic binds a subscription field to a bus topic. The executor
// drains the returned channel and runs the field resolver once per
// message until the request context is cancelled.
func (s *Schema) subscribeTopic(topic string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		s.log.Debug("Subscription started", zap.String("topic", topic))
		return s.bus.Subscribe(p.Context, topic), nil
	}
}
