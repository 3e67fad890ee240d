package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Querier is the subset of the pool interface that pgx.Tx also satisfies,
// so every repository can run either on the pool or inside a transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Page is the result shape of paginated queries.
type Page[T any] struct {
	Rows       []*T
	Count      int64
	Page       int
	TotalPages int
}

const (
	minPageLimit = 1
	maxPageLimit = 50
)

// base carries the generic per-table operations. Entity repositories embed
// it and add their own joins and projections.
type base[T any] struct {
	q     Querier
	log   *zap.Logger
	table string
	cols  string
	scan  func(rows pgx.Rows) (*T, error)
}

func (b *base[T]) collect(rows pgx.Rows) ([]*T, error) {
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item, err := b.scan(rows)
		if err != nil {
			b.log.Error("Failed to scan row", zap.String("table", b.table), zap.Error(err))
			return nil, fmt.Errorf("scan %s row: %w", b.table, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		b.log.Error("Rows iteration error", zap.String("table", b.table), zap.Error(err))
		return nil, fmt.Errorf("iterate %s rows: %w", b.table, err)
	}

	return items, nil
}

// findAll runs SELECT cols FROM table with an optional trailing clause
// (WHERE/ORDER BY/LIMIT). Placeholder numbering starts at $1.
func (b *base[T]) findAll(ctx context.Context, clause string, args ...any) ([]*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", b.cols, b.table)
	if clause != "" {
		query += " " + clause
	}

	rows, err := b.q.Query(ctx, query, args...)
	if err != nil {
		b.log.Error("Query failed", zap.String("table", b.table), zap.Error(err))
		return nil, fmt.Errorf("query %s: %w", b.table, err)
	}

	return b.collect(rows)
}

// findOne returns the first matching row or nil.
func (b *base[T]) findOne(ctx context.Context, where string, args ...any) (*T, error) {
	items, err := b.findAll(ctx, fmt.Sprintf("WHERE %s LIMIT 1", where), args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// FindPaginated clamps page to >= 1 and limit to [1, 50], returning rows
// sorted newest-first together with the total count.
func (b *base[T]) FindPaginated(ctx context.Context, page, limit int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < minPageLimit {
		limit = minPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	count, err := b.count(ctx, "")
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	rows, err := b.findAll(ctx, "ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := int((count + int64(limit) - 1) / int64(limit))
	return &Page[T]{
		Rows:       rows,
		Count:      count,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (b *base[T]) exists(ctx context.Context, where string, args ...any) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", b.table, where)

	var found bool
	if err := b.q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		b.log.Error("Exists check failed", zap.String("table", b.table), zap.Error(err))
		return false, fmt.Errorf("exists %s: %w", b.table, err)
	}

	return found, nil
}

func (b *base[T]) count(ctx context.Context, where string, args ...any) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", b.table)
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := b.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		b.log.Error("Count failed", zap.String("table", b.table), zap.Error(err))
		return 0, fmt.Errorf("count %s: %w", b.table, err)
	}

	return count, nil
}

// deleteReturning removes a row by id and returns it, or nil when absent.
func (b *base[T]) deleteReturning(ctx context.Context, where string, args ...any) (*T, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING %s", b.table, where, b.cols)

	rows, err := b.q.Query(ctx, query, args...)
	if err != nil {
		b.log.Error("Delete failed", zap.String("table", b.table), zap.Error(err))
		return nil, fmt.Errorf("delete %s: %w", b.table, err)
	}

	items, err := b.collect(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (b *base[T]) deleteWhere(ctx context.Context, where string, args ...any) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", b.table, where)

	tag, err := b.q.Exec(ctx, query, args...)
	if err != nil {
		b.log.Error("Bulk delete failed", zap.String("table", b.table), zap.Error(err))
		return 0, fmt.Errorf("delete from %s: %w", b.table, err)
	}

	return tag.RowsAffected(), nil
}

func (b *base[T]) updateWhere(ctx context.Context, set, where string, args ...any) (int64, error) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", b.table, set, where)

	tag, err := b.q.Exec(ctx, query, args...)
	if err != nil {
		if !IsUniqueViolation(err) {
			b.log.Error("Update failed", zap.String("table", b.table), zap.Error(err))
		}
		return 0, fmt.Errorf("update %s: %w", b.table, err)
	}

	return tag.RowsAffected(), nil
}

// IsUniqueViolation reports whether err is a Postgres unique-index
// violation. The unique indexes are the authoritative uniqueness guard;
// the application-level existence checks are early exits only.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
