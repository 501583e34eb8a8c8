package services

import (
	"context"
	"errors"
	"fmt"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult pairs the user with a fresh access token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type UserService struct {
	repo      interfaces.UserRepository
	gate      *AccessControl
	jwtSecret string
	logger    *logger.Logger
}

func NewUserService(repo interfaces.UserRepository, gate *AccessControl, jwtSecret string, log *logger.Logger) *UserService {
	return &UserService{
		repo:      repo,
		gate:      gate,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// Signup registers a pilgrim account. Staff roles are never
// self-assigned; an admin promotes users after the fact.
func (s *UserService) Signup(ctx context.Context, input *SignupInput) (*AuthResult, error) {
	if len(input.Password) < utils.PasswordMinLength || len(input.Password) > utils.PasswordMaxLength {
		return nil, fmt.Errorf("password length out of range: %w", utils.ErrInvalidInput)
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", utils.ErrMsgUserExists, utils.ErrInvalidInput)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hash),
		Role:     models.RolePilgrim,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User registered")

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates by email and password. A wrong email and a wrong
// password produce the same error; a deactivated account is unauthorized
// even with correct credentials.
func (s *UserService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", utils.ErrMsgInvalidCredentials, utils.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%s: %w", utils.ErrMsgInvalidCredentials, utils.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", utils.ErrMsgAccountDeactivated, utils.ErrUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ResolveActor loads the stored user behind a token and builds the
// principal service calls run as. Done per request so deactivation takes
// effect immediately, not at token expiry.
func (s *UserService) ResolveActor(ctx context.Context, userID primitive.ObjectID) (*Actor, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, fmt.Errorf("unknown principal: %w", utils.ErrUnauthorized)
		}
		return nil, err
	}

	return &Actor{
		ID:     user.ID,
		Role:   user.Role,
		Active: user.IsActive,
	}, nil
}

func (s *UserService) Profile(ctx context.Context, actor *Actor) (*models.User, error) {
	if actor == nil || !actor.Active {
		return nil, fmt.Errorf("profile: %w", utils.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, actor.ID)
}

func (s *UserService) UpdateLocation(ctx context.Context, actor *Actor, location *models.Location) (*models.User, error) {
	if actor == nil || !actor.Active {
		return nil, fmt.Errorf("update location: %w", utils.ErrUnauthorized)
	}
	return s.repo.UpdateLocation(ctx, actor.ID, location)
}

func (s *UserService) ListUsers(ctx context.Context, actor *Actor, filter *interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error) {
	if err := s.gate.Authorize(actor, ActionManageUsers); err != nil {
		return nil, 0, err
	}
	return s.repo.Query(ctx, filter, params)
}

// SetRole promotes or demotes a user. Admin only.
func (s *UserService) SetRole(ctx context.Context, actor *Actor, targetID primitive.ObjectID, role models.UserRole) (*models.User, error) {
	if err := s.gate.Authorize(actor, ActionManageUsers); err != nil {
		return nil, err
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, utils.ErrInvalidInput)
	}
	return s.repo.Update(ctx, targetID, map[string]interface{}{"role": role})
}

// SetActive deactivates or reactivates an account. Accounts are never
// hard-deleted; every report and alert keeps a resolvable author.
func (s *UserService) SetActive(ctx context.Context, actor *Actor, targetID primitive.ObjectID, active bool) (*models.User, error) {
	if err := s.gate.Authorize(actor, ActionManageUsers); err != nil {
		return nil, err
	}

	user, err := s.repo.SetActive(ctx, targetID, active)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(targetID).WithField("active", active).Info("User activity changed")

	return user, nil
}
