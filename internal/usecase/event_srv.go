package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-booking/internal/apperr"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/internal/pubsub"
	"event-booking/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgTitleTaken      = "يوجد لدينا مناسبة بنفس هذا العنوان، الرجاء اختيار عنوان آخر!"
	msgEventNotFound   = "المناسبة غير موجودة!"
	msgNotEventUpdater = "غير مصرح لك بتعديل هذه المناسبة!"
	msgNotEventDeleter = "غير مصرح لك بحذف هذه المناسبة!"
	msgInvalidDate     = "تاريخ المناسبة غير صالح"

	defaultEventsLimit = 8
)

type EventService interface {
	GetEvents(ctx context.Context, searchTerm string, skip, limit int) ([]*response.EventResponse, error)
	GetUserEvents(ctx context.Context, userID string) ([]*response.EventResponse, error)
	CreateEvent(ctx context.Context, caller *entity.User, input *request.EventInput) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, caller *entity.User, eventID string, input *request.UpdateEventInput) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, caller *entity.User, eventID string) ([]*response.EventResponse, error)
}

type eventService struct {
	repo *repository.Repository
	bus  *pubsub.PubSub
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, bus *pubsub.PubSub, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		bus:  bus,
		log:  log.With(zap.String("service", "event")),
	}
}

// GetEvents lists events newest-first. A non-empty search term narrows to
// title/description substring matches. The schema supplies the default
// limit of 8 when the argument is omitted; an explicit limit of zero or
// less is passed through and means no limit.
func (s *eventService) GetEvents(ctx context.Context, searchTerm string, skip, limit int) ([]*response.EventResponse, error) {
	if skip < 0 {
		skip = 0
	}

	var events []*entity.Event
	var err error
	if strings.TrimSpace(searchTerm) != "" {
		events, err = s.repo.Event.Search(ctx, searchTerm, skip, limit)
	} else {
		events, err = s.repo.Event.FindAllWithCreator(ctx, skip, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return response.ToEventResponses(events), nil
}

// GetUserEvents is unauthenticated-readable; it serves both the "my
// events" page and other users' event listings.
func (s *eventService) GetUserEvents(ctx context.Context, userID string) ([]*response.EventResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.NotFound(msgUserNotFound)
	}

	events, err := s.repo.Event.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}

	return response.ToEventResponses(events), nil
}

func (s *eventService) CreateEvent(ctx context.Context, caller *entity.User, input *request.EventInput) (*response.EventResponse, error) {
	if err := validation.ValidateEventInput(input); err != nil {
		return nil, err
	}

	taken, err := s.repo.Event.TitleExists(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if taken {
		return nil, apperr.BadUserInput(msgTitleTaken)
	}

	date, err := validation.ParseDate(input.Date)
	if err != nil {
		return nil, apperr.BadUserInput(msgInvalidDate)
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Date:        date,
		CreatorID:   caller.ID,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.BadUserInput(msgTitleTaken)
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	event.Creator = caller

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("creator_id", caller.ID.String()))

	created := response.ToEventResponse(event)
	s.bus.Publish(pubsub.TopicEventAdded, created)

	return created, nil
}

// UpdateEvent applies only the provided fields. Creator-only.
func (s *eventService) UpdateEvent(ctx context.Context, caller *entity.User, eventID string, input *request.UpdateEventInput) (*response.EventResponse, error) {
	if err := validation.ValidateUpdateEventInput(input); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}
	if event.CreatorID != caller.ID {
		return nil, apperr.Forbidden(msgNotEventUpdater)
	}

	patch := repository.EventPatch{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
	}
	if input.Date != nil {
		date, err := validation.ParseDate(*input.Date)
		if err != nil {
			return nil, apperr.BadUserInput(msgInvalidDate)
		}
		patch.Date = &date
	}

	updated, err := s.repo.Event.UpdateWithCreator(ctx, id, patch)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.BadUserInput(msgTitleTaken)
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if updated == nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}

	s.log.Info("Event updated", zap.String("event_id", id.String()))

	return response.ToEventResponse(updated), nil
}

// DeleteEvent removes the event and its bookings in one transaction and
// returns the refreshed event list. Creator-only.
func (s *eventService) DeleteEvent(ctx context.Context, caller *entity.User, eventID string) ([]*response.EventResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil, apperr.NotFound(msgEventNotFound)
	}
	if event.CreatorID != caller.ID {
		return nil, apperr.Forbidden(msgNotEventDeleter)
	}

	err = s.repo.InTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Booking.DeleteByEvent(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Event.Delete(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to delete event", zap.Error(err), zap.String("event_id", id.String()))
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("Event deleted", zap.String("event_id", id.String()))

	events, err := s.repo.Event.FindAllWithCreator(ctx, 0, defaultEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return response.ToEventResponses(events), nil
}
