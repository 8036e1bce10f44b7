package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/voltpoint/charge-station-api/internal/config"
	"github.com/voltpoint/charge-station-api/internal/model"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/shared/auth"
	"github.com/voltpoint/charge-station-api/shared/security"
)

// AuthUsecase defines the interface for account-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	GetCurrentUser(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
	DeleteAccount(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// UpdateProfileParams defines the optional parameters for a profile update.
type UpdateProfileParams struct {
	Name  *string
	Email *string
}

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	stationRepo repository.StationRepository
	jwtAuth     auth.JWTAuthenticator
	cfg         *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	stationRepo repository.StationRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		stationRepo: stationRepo,
		jwtAuth:     jwtAuth,
		cfg:         cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailAlreadyExists
		}

		return "", err
	}

	return u.jwtAuth.GenerateToken(user.ID.Hex(), u.cfg.Token.Secret, u.cfg.Token.ExpiresIn)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", err
	} else if !ok {
		return "", ErrInvalidCredentials
	}

	return u.jwtAuth.GenerateToken(user.ID.Hex(), u.cfg.Token.Secret, u.cfg.Token.ExpiresIn)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		Name:  params.Name,
		Email: params.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrEmailAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := u.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	// Stations owned by a deleted account would fail every later ownership
	// check against a dangling id, so they go with the account.
	if _, err := u.stationRepo.DeleteStationsByOwner(ctx, user.ID); err != nil {
		return err
	}

	return nil
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if ok, err := security.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}
