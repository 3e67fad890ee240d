package usecase

import (
	"context"
	"fmt"

	"event-booking/internal/apperr"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/response"
	"event-booking/internal/pubsub"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgAlreadyBooked      = "قد حجزت هذه المناسبة بالفعل مسبقًا!"
	msgBookingNotFound    = "الحجز غير موجود!"
	msgNotBookingCanceler = "غير مصرح لك بإلغاء هذا الحجز!"
)

type BookingService interface {
	GetBookings(ctx context.Context, caller *entity.User) ([]*response.BookingResponse, error)
	BookEvent(ctx context.Context, caller *entity.User, eventID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, caller *entity.User, bookingID string) (*response.EventResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	bus  *pubsub.PubSub
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, bus *pubsub.PubSub, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		bus:  bus,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookings(ctx context.Context, caller *entity.User) ([]*response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.ToBookingResponses(bookings), nil
}

// BookEvent reserves the event for the caller. One booking per
// (user, event) pair; booking one's own event is not blocked here, the
// client hides the action for creators.
func (s *bookingService) BookEvent(ctx context.Context, caller *entity.User, eventID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}

	booked, err := s.repo.Booking.UserHasBooked(ctx, caller.ID, id)
	if err != nil {
		return nil, fmt.Errorf("check booking: %w", err)
	}
	if booked {
		return nil, apperr.BadUserInput(msgAlreadyBooked)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}

	booking, err := s.repo.Booking.CreateAndPopulate(ctx, caller.ID, event.ID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.BadUserInput(msgAlreadyBooked)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Event booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("event_id", event.ID.String()),
		zap.String("user_id", caller.ID.String()))

	created := response.ToBookingResponse(booking)
	s.bus.Publish(pubsub.TopicBookingAdded, created)

	return created, nil
}

// CancelBooking deletes the caller's booking and returns its event.
func (s *bookingService) CancelBooking(ctx context.Context, caller *entity.User, bookingID string) (*response.EventResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.NotFound(msgBookingNotFound)
	}

	booking, err := s.repo.Booking.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, apperr.NotFound(msgBookingNotFound)
	}
	if booking.UserID != caller.ID {
		return nil, apperr.Forbidden(msgNotBookingCanceler)
	}

	event := response.ToEventResponse(booking.Event)

	if _, err := s.repo.Booking.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", id.String()),
		zap.String("user_id", caller.ID.String()))

	return event, nil
}
