package repository

import (
	"context"
	"fmt"

	"event-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups the entity repositories behind one access point.
type Repository struct {
	User    UserRepository
	Event   EventRepository
	Booking BookingRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Event:   NewEventRepository(db, log),
		Booking: NewBookingRepository(db, log),
		db:      db,
		log:     log,
	}
}

// InTx runs fn against transaction-bound copies of the repositories.
// Any error rolls the whole unit back; cascades rely on this.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// Rollback is a no-op once the transaction is committed.
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := &Repository{
		User:    r.User.WithTx(tx),
		Event:   r.Event.WithTx(tx),
		Booking: r.Booking.WithTx(tx),
		db:      r.db,
		log:     r.log,
	}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

type Health struct {
	Status       string          `json:"status"`
	Repositories map[string]bool `json:"repositories"`
}

// HealthCheck probes each repository independently; a single failing
// probe degrades the aggregate status.
func (r *Repository) HealthCheck(ctx context.Context) *Health {
	results := map[string]bool{
		"user":    r.probe(ctx, "user", func() error { _, err := r.User.Count(ctx); return err }),
		"event":   r.probe(ctx, "event", func() error { _, err := r.Event.Count(ctx); return err }),
		"booking": r.probe(ctx, "booking", func() error { _, err := r.Booking.Count(ctx); return err }),
	}

	status := StatusHealthy
	for _, ok := range results {
		if !ok {
			status = StatusDegraded
			break
		}
	}

	return &Health{Status: status, Repositories: results}
}

func (r *Repository) probe(_ context.Context, name string, count func() error) bool {
	if err := count(); err != nil {
		r.log.Warn("Repository probe failed", zap.String("repository", name), zap.Error(err))
		return false
	}
	return true
}
