package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// EventPatch is a partial update; nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Date        *time.Time
}

type EventRepository interface {
	WithTx(q Querier) EventRepository
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByIDWithCreator(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAllWithCreator(ctx context.Context, skip, limit int) ([]*entity.Event, error)
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Event, error)
	FindPaginated(ctx context.Context, page, limit int) (*Page[entity.Event], error)
	Search(ctx context.Context, term string, skip, limit int) ([]*entity.Event, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	UpdateWithCreator(ctx context.Context, id uuid.UUID, patch EventPatch) (*entity.Event, error)
	EventIDsByCreator(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error)
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Count(ctx context.Context) (int64, error)
}

const eventCols = "id, title, description, price, date, creator_id, created_at, updated_at"

// eventWithCreatorQuery joins the creator so callers get the relation in
// one round trip.
const eventWithCreatorQuery = `
	SELECT e.id, e.title, e.description, e.price, e.date, e.creator_id, e.created_at, e.updated_at,
	       u.id, u.username, u.email, u.password, u.created_at, u.updated_at
	FROM events e
	JOIN users u ON u.id = e.creator_id
`

type eventRepository struct {
	base[entity.Event]
}

func NewEventRepository(q Querier, log *zap.Logger) EventRepository {
	return &eventRepository{
		base: base[entity.Event]{
			q:     q,
			log:   log,
			table: "events",
			cols:  eventCols,
			scan:  scanEvent,
		},
	}
}

func scanEvent(rows pgx.Rows) (*entity.Event, error) {
	var event entity.Event
	err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Price,
		&event.Date,
		&event.CreatorID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEventWithCreator(rows pgx.Rows) (*entity.Event, error) {
	var event entity.Event
	var creator entity.User
	err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Price,
		&event.Date,
		&event.CreatorID,
		&event.CreatedAt,
		&event.UpdatedAt,
		&creator.ID,
		&creator.Username,
		&creator.Email,
		&creator.PasswordHash,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Creator = &creator
	return &event, nil
}

func (er *eventRepository) WithTx(q Querier) EventRepository {
	repo := *er
	repo.base.q = q
	return &repo
}

func (er *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, description, price, date, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := er.q.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Price,
		event.Date,
		event.CreatorID,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		if !IsUniqueViolation(err) {
			er.log.Error("Failed to create event",
				zap.Error(err),
				zap.String("title", event.Title),
			)
		}
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func (er *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return er.findOne(ctx, "id = $1", id)
}

func (er *eventRepository) collectWithCreator(ctx context.Context, clause string, args ...any) ([]*entity.Event, error) {
	rows, err := er.q.Query(ctx, eventWithCreatorQuery+clause, args...)
	if err != nil {
		er.log.Error("Event query failed", zap.Error(err))
		return nil, fmt.Errorf("query events with creator: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEventWithCreator(rows)
		if err != nil {
			er.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		er.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func (er *eventRepository) FindByIDWithCreator(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	events, err := er.collectWithCreator(ctx, "WHERE e.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events[0], nil
}

// FindAllWithCreator returns events newest-first with the creator resolved.
// A limit of zero or less means no limit.
func (er *eventRepository) FindAllWithCreator(ctx context.Context, skip, limit int) ([]*entity.Event, error) {
	if limit <= 0 {
		return er.collectWithCreator(ctx,
			"ORDER BY e.created_at DESC, e.id DESC OFFSET $1",
			skip)
	}
	return er.collectWithCreator(ctx,
		"ORDER BY e.created_at DESC, e.id DESC LIMIT $1 OFFSET $2",
		limit, skip)
}

func (er *eventRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Event, error) {
	return er.collectWithCreator(ctx,
		"WHERE e.creator_id = $1 ORDER BY e.created_at DESC, e.id DESC",
		creatorID)
}

// Search matches the term as a literal case-insensitive substring of the
// title or description. LIKE wildcards in the term are escaped so the
// pattern never behaves as one. A limit of zero or less means no limit.
func (er *eventRepository) Search(ctx context.Context, term string, skip, limit int) ([]*entity.Event, error) {
	pattern := "%" + EscapeLike(strings.TrimSpace(term)) + "%"
	if limit <= 0 {
		return er.collectWithCreator(ctx,
			`WHERE e.title ILIKE $1 ESCAPE '\' OR e.description ILIKE $1 ESCAPE '\'
			 ORDER BY e.created_at DESC, e.id DESC OFFSET $2`,
			pattern, skip)
	}
	return er.collectWithCreator(ctx,
		`WHERE e.title ILIKE $1 ESCAPE '\' OR e.description ILIKE $1 ESCAPE '\'
		 ORDER BY e.created_at DESC, e.id DESC LIMIT $2 OFFSET $3`,
		pattern, limit, skip)
}

func (er *eventRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	return er.exists(ctx, "title = $1", title)
}

func (er *eventRepository) UpdateWithCreator(ctx context.Context, id uuid.UUID, patch EventPatch) (*entity.Event, error) {
	set := `title = COALESCE($2, title),
		description = COALESCE($3, description),
		price = COALESCE($4, price),
		date = COALESCE($5, date),
		updated_at = NOW()`

	affected, err := er.updateWhere(ctx, set, "id = $1",
		id, patch.Title, patch.Description, patch.Price, patch.Date)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return er.FindByIDWithCreator(ctx, id)
}

// EventIDsByCreator projects only the ids, for cascade deletes.
func (er *eventRepository) EventIDsByCreator(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := er.q.Query(ctx, "SELECT id FROM events WHERE creator_id = $1", creatorID)
	if err != nil {
		er.log.Error("Failed to list event ids",
			zap.Error(err),
			zap.String("creator_id", creatorID.String()),
		)
		return nil, fmt.Errorf("event ids by creator %s: %w", creatorID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event ids: %w", err)
	}

	return ids, nil
}

func (er *eventRepository) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	return er.deleteWhere(ctx, "creator_id = $1", creatorID)
}

func (er *eventRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return er.deleteReturning(ctx, "id = $1", id)
}

func (er *eventRepository) Count(ctx context.Context) (int64, error) {
	return er.count(ctx, "")
}

// EscapeLike neutralizes LIKE/ILIKE wildcards in a user-supplied term.
func EscapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
