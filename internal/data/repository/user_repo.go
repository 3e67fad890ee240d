package repository

import (
	"context"
	"fmt"

	"event-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	WithTx(q Querier) UserRepository
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, passwordHash *string) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

const userCols = "id, username, email, password, created_at, updated_at"

type userRepository struct {
	base[entity.User]
}

func NewUserRepository(q Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		base: base[entity.User]{
			q:     q,
			log:   log,
			table: "users",
			cols:  userCols,
			scan:  scanUser,
		},
	}
}

func scanUser(rows pgx.Rows) (*entity.User, error) {
	var user entity.User
	err := rows.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) WithTx(q Querier) UserRepository {
	repo := *ur
	repo.base.q = q
	return &repo
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ur.q.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if !IsUniqueViolation(err) {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("email", user.Email),
			)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", email)
}

func (ur *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return ur.exists(ctx, "email = $1", email)
}

// UpdateProfile changes only the provided fields. Email is not updatable
// through any repository path.
func (ur *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, username, passwordHash *string) (*entity.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    password = COALESCE($3, password),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userCols

	rows, err := ur.q.Query(ctx, query, id, username, passwordHash)
	if err != nil {
		ur.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("update profile %s: %w", id.String(), err)
	}

	users, err := ur.collect(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.deleteReturning(ctx, "id = $1", id)
}

func (ur *userRepository) Count(ctx context.Context) (int64, error) {
	return ur.count(ctx, "")
}
