package usecase

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/apperr"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/internal/validation"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User-facing messages (rendered verbatim by the client).
const (
	msgAccountNotFound = "هذا الحساب غير موجود لدينا!!"
	msgWrongCreds      = "خطأ في البريد الإلكتروني أو كلمة المرور!!"
	msgEmailTaken      = "هذا الحساب موجود مسبقًا لدينا!!"
	msgUserNotFound    = "المستخدم غير موجود!"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*response.AuthResponse, error)
	CreateUser(ctx context.Context, input *request.UserInput) (*response.AuthResponse, error)
	UpdateUser(ctx context.Context, caller *entity.User, input *request.UpdateUserInput) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, caller *entity.User) (bool, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Login authenticates by email and password. Both the unknown-account and
// wrong-password cases answer BAD_USER_INPUT so the GraphQL error code
// never reveals which one occurred; only the message text differs.
func (s *authService) Login(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	if err := validation.ValidateLoginInput(email, password); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		return nil, apperr.BadUserInput(msgAccountNotFound)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperr.BadUserInput(msgWrongCreds)
	}

	token, err := utils.SignToken(user.ID, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		UserID:   user.ID.String(),
		Token:    token,
		Username: user.Username,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, input *request.UserInput) (*response.AuthResponse, error) {
	if err := validation.ValidateUserInput(input); err != nil {
		return nil, err
	}

	taken, err := s.repo.User.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.BadUserInput(msgEmailTaken)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// The unique index is the authoritative guard; a concurrent
		// registration that slipped past the pre-check lands here.
		if repository.IsUniqueViolation(err) {
			return nil, apperr.BadUserInput(msgEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := utils.SignToken(user.ID, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.AuthResponse{
		UserID:   user.ID.String(),
		Token:    token,
		Username: user.Username,
	}, nil
}

// UpdateUser applies the provided profile fields to the caller's own
// record. Email is never mutable through this path.
func (s *authService) UpdateUser(ctx context.Context, caller *entity.User, input *request.UpdateUserInput) (*response.UserResponse, error) {
	if err := validation.ValidateUpdateUserInput(input); err != nil {
		return nil, err
	}

	var passwordHash *string
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hashed
	}

	updated, err := s.repo.User.UpdateProfile(ctx, caller.ID, input.Username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if updated == nil {
		return nil, apperr.NotFound(msgUserNotFound)
	}

	s.log.Info("Profile updated", zap.String("user_id", caller.ID.String()))

	return response.ToUserResponse(updated), nil
}

// DeleteUser removes the caller's account with its events and every
// booking touching those events or made by the caller. The order —
// bookings, then events, then the user — avoids dangling references, and
// the transaction makes the cascade all-or-nothing.
func (s *authService) DeleteUser(ctx context.Context, caller *entity.User) (bool, error) {
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		eventIDs, err := tx.Event.EventIDsByCreator(ctx, caller.ID)
		if err != nil {
			return err
		}

		if _, err := tx.Booking.DeleteByUserCascade(ctx, caller.ID, eventIDs); err != nil {
			return err
		}

		if _, err := tx.Event.DeleteByCreator(ctx, caller.ID); err != nil {
			return err
		}

		if _, err := tx.User.Delete(ctx, caller.ID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		s.log.Error("Failed to delete account", zap.Error(err), zap.String("user_id", caller.ID.String()))
		return false, fmt.Errorf("delete account: %w", err)
	}

	s.log.Info("Account deleted", zap.String("user_id", caller.ID.String()))
	return true, nil
}
