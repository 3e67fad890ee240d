package usecase

import (
	"event-booking/internal/data/repository"
	"event-booking/internal/pubsub"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Event   EventService
	Booking BookingService
}

func NewService(repo *repository.Repository, bus *pubsub.PubSub, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Event:   NewEventService(repo, bus, log),
		Booking: NewBookingService(repo, bus, log),
	}
}
