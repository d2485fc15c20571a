package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/repos"
	"github.com/mealdash/mealdash-backend/internal/requestdata"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateProfile(ctx context.Context, firstName, lastName, phone, address string) (*types.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateOnline(ctx context.Context, online bool) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (us *userService) me(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("user id not set in request data"))
	}
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, storeErr("user_lookup_failed", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %s does not exist", rd.UserID))
	}
	return found[0], nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	return us.me(ctx)
}

func (us *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.List(ctx, nil)
	if err != nil {
		return nil, storeErr("user_list_failed", err)
	}
	if users == nil {
		users = []*types.User{}
	}
	return users, nil
}

func (us *userService) UpdateProfile(ctx context.Context, firstName, lastName, phone, address string) (*types.User, error) {
	user, err := us.me(ctx)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}

	if err := us.userRepo.Save(ctx, nil, user); err != nil {
		return nil, storeErr("user_update_failed", err)
	}
	return user, nil
}

func (us *userService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	user, err := us.me(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apierr.Validation("wrong_password", fmt.Errorf("current password does not match"))
	}
	if len(newPassword) < 8 {
		return apierr.Validation("weak_password", fmt.Errorf("password must be at least 8 characters"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apierr.Storage("hash_failed", err)
	}
	if err := us.userRepo.UpdatePassword(ctx, nil, user.ID, string(hashed)); err != nil {
		return storeErr("user_update_failed", err)
	}
	return nil
}

func (us *userService) UpdateOnline(ctx context.Context, online bool) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("user id not set in request data"))
	}
	if err := us.userRepo.UpdateOnline(ctx, nil, rd.UserID, online); err != nil {
		return storeErr("user_update_failed", err)
	}
	return nil
}
