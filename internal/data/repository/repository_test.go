package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"event-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeQuerier records every statement and returns canned results, enough
// to pin the SQL a repository emits without a database.
type fakeQuerier struct {
	queries []capturedQuery
	count   int64
	execTag pgconn.CommandTag
	execErr error
}

type capturedQuery struct {
	sql  string
	args []any
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, capturedQuery{sql: sql, args: args})
	return emptyRows{}, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, capturedQuery{sql: sql, args: args})
	return countRow{count: f.count}
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, capturedQuery{sql: sql, args: args})
	return f.execTag, f.execErr
}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type countRow struct{ count int64 }

func (r countRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.count
	return nil
}

func TestFindPaginated_ClampsPageAndLimit(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"negative page and oversized limit", -3, 500, 1, 50, 0},
		{"zero limit raised to one", 2, 0, 2, 1, 1},
		{"in-range values untouched", 3, 10, 3, 10, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQuerier{count: 1000}
			repo := repository.NewEventRepository(q, zap.NewNop())

			page, err := repo.FindPaginated(context.Background(), tc.page, tc.limit)
			require.NoError(t, err)

			assert.Equal(t, tc.wantPage, page.Page)
			assert.Equal(t, int64(1000), page.Count)
			assert.Equal(t, 1000/tc.wantLimit, page.TotalPages)

			// The count query runs first, then the page select.
			require.Len(t, q.queries, 2)
			assert.Equal(t, []any{tc.wantLimit, tc.wantOffset}, q.queries[1].args)
		})
	}
}

func TestFindAllWithCreator_ZeroLimitMeansNoLimit(t *testing.T) {
	q := &fakeQuerier{}
	repo := repository.NewEventRepository(q, zap.NewNop())

	_, err := repo.FindAllWithCreator(context.Background(), 4, 0)
	require.NoError(t, err)

	require.Len(t, q.queries, 1)
	assert.NotContains(t, q.queries[0].sql, "LIMIT")
	assert.Equal(t, []any{4}, q.queries[0].args)
}

func TestSearch_ZeroLimitMeansNoLimit(t *testing.T) {
	q := &fakeQuerier{}
	repo := repository.NewEventRepository(q, zap.NewNop())

	_, err := repo.Search(context.Background(), "مسرح", 0, 0)
	require.NoError(t, err)

	require.Len(t, q.queries, 1)
	assert.NotContains(t, q.queries[0].sql, "LIMIT")
}

func TestUpdateWithCreator_EmitsSingleUpdate(t *testing.T) {
	q := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := repository.NewEventRepository(q, zap.NewNop())

	title := "العنوان الجديد"
	_, err := repo.UpdateWithCreator(context.Background(), uuid.New(), repository.EventPatch{Title: &title})
	require.NoError(t, err)

	// One UPDATE, then the reload with the creator joined.
	require.Len(t, q.queries, 2)
	assert.Contains(t, q.queries[0].sql, "UPDATE events SET")
	assert.Contains(t, q.queries[0].sql, "COALESCE($2, title)")
	assert.Contains(t, q.queries[1].sql, "JOIN users")
}

func TestUpdateWithCreator_MissingRowSkipsReload(t *testing.T) {
	q := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := repository.NewEventRepository(q, zap.NewNop())

	title := "العنوان الجديد"
	updated, err := repo.UpdateWithCreator(context.Background(), uuid.New(), repository.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Len(t, q.queries, 1)
}

func TestUpdateWithCreator_UniqueViolationPassesThrough(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	repo := repository.NewEventRepository(q, zap.NewNop())

	title := "عنوان مكرر"
	_, err := repo.UpdateWithCreator(context.Background(), uuid.New(), repository.EventPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"concert", "concert"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\%`, `\%\_\\\%`},
		{"مسرح", "مسرح"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, repository.EscapeLike(tc.term), "term %q", tc.term)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, repository.IsUniqueViolation(unique))

	// Wrapped errors still match.
	assert.True(t, repository.IsUniqueViolation(fmt.Errorf("create user: %w", unique)))

	assert.False(t, repository.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, repository.IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, repository.IsUniqueViolation(nil))
}
