package repository

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	WithTx(q Querier) BookingRepository
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDFullyPopulated(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	UserHasBooked(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	CreateAndPopulate(ctx context.Context, userID, eventID uuid.UUID) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	DeleteByUserCascade(ctx context.Context, userID uuid.UUID, eventIDs []uuid.UUID) (int64, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

const bookingCols = "id, event_id, user_id, created_at, updated_at"

// bookingDetailsQuery resolves the event and the event's creator.
const bookingDetailsQuery = `
	SELECT b.id, b.event_id, b.user_id, b.created_at, b.updated_at,
	       e.id, e.title, e.description, e.price, e.date, e.creator_id, e.created_at, e.updated_at,
	       c.id, c.username, c.email, c.password, c.created_at, c.updated_at
	FROM bookings b
	JOIN events e ON e.id = b.event_id
	JOIN users c ON c.id = e.creator_id
`

// bookingFullQuery additionally resolves the booking user.
const bookingFullQuery = `
	SELECT b.id, b.event_id, b.user_id, b.created_at, b.updated_at,
	       e.id, e.title, e.description, e.price, e.date, e.creator_id, e.created_at, e.updated_at,
	       c.id, c.username, c.email, c.password, c.created_at, c.updated_at,
	       u.id, u.username, u.email, u.password, u.created_at, u.updated_at
	FROM bookings b
	JOIN events e ON e.id = b.event_id
	JOIN users c ON c.id = e.creator_id
	JOIN users u ON u.id = b.user_id
`

type bookingRepository struct {
	base[entity.Booking]
}

func NewBookingRepository(q Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		base: base[entity.Booking]{
			q:     q,
			log:   log,
			table: "bookings",
			cols:  bookingCols,
			scan:  scanBooking,
		},
	}
}

func scanBooking(rows pgx.Rows) (*entity.Booking, error) {
	var booking entity.Booking
	err := rows.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.UserID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookingDetails(rows pgx.Rows, withUser bool) (*entity.Booking, error) {
	var booking entity.Booking
	var event entity.Event
	var creator entity.User

	dest := []any{
		&booking.ID, &booking.EventID, &booking.UserID, &booking.CreatedAt, &booking.UpdatedAt,
		&event.ID, &event.Title, &event.Description, &event.Price, &event.Date,
		&event.CreatorID, &event.CreatedAt, &event.UpdatedAt,
		&creator.ID, &creator.Username, &creator.Email, &creator.PasswordHash,
		&creator.CreatedAt, &creator.UpdatedAt,
	}

	var user entity.User
	if withUser {
		dest = append(dest,
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.CreatedAt, &user.UpdatedAt,
		)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	event.Creator = &creator
	booking.Event = &event
	if withUser {
		booking.User = &user
	}
	return &booking, nil
}

func (br *bookingRepository) WithTx(q Querier) BookingRepository {
	repo := *br
	repo.base.q = q
	return &repo
}

func (br *bookingRepository) collectDetails(ctx context.Context, query, clause string, withUser bool, args ...any) ([]*entity.Booking, error) {
	rows, err := br.q.Query(ctx, query+clause, args...)
	if err != nil {
		br.log.Error("Booking query failed", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBookingDetails(rows, withUser)
		if err != nil {
			br.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		br.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

// FindByUser returns the user's bookings with event, creator and user
// relations resolved, newest-first.
func (br *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return br.collectDetails(ctx, bookingFullQuery,
		"WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC",
		true, userID)
}

func (br *bookingRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	bookings, err := br.collectDetails(ctx, bookingDetailsQuery, "WHERE b.id = $1", false, id)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (br *bookingRepository) FindByIDFullyPopulated(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	bookings, err := br.collectDetails(ctx, bookingFullQuery, "WHERE b.id = $1", true, id)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (br *bookingRepository) UserHasBooked(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	return br.exists(ctx, "user_id = $1 AND event_id = $2", userID, eventID)
}

// CreateAndPopulate inserts the booking and returns it with both
// relations resolved.
func (br *bookingRepository) CreateAndPopulate(ctx context.Context, userID, eventID uuid.UUID) (*entity.Booking, error) {
	now := time.Now()
	id := uuid.New()

	query := `
		INSERT INTO bookings (id, event_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := br.q.Exec(ctx, query, id, eventID, userID, now, now); err != nil {
		if !IsUniqueViolation(err) {
			br.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("event_id", eventID.String()),
			)
		}
		return nil, fmt.Errorf("create booking for event %s: %w", eventID.String(), err)
	}

	return br.FindByIDFullyPopulated(ctx, id)
}

func (br *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return br.deleteReturning(ctx, "id = $1", id)
}

// DeleteByUserCascade removes every booking made by the user or touching
// any of the given events, in one statement.
func (br *bookingRepository) DeleteByUserCascade(ctx context.Context, userID uuid.UUID, eventIDs []uuid.UUID) (int64, error) {
	return br.deleteWhere(ctx, "user_id = $1 OR event_id = ANY($2)", userID, eventIDs)
}

func (br *bookingRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return br.deleteWhere(ctx, "event_id = $1", eventID)
}

func (br *bookingRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return br.count(ctx, "event_id = $1", eventID)
}

func (br *bookingRepository) Count(ctx context.Context) (int64, error) {
	return br.count(ctx, "")
}
