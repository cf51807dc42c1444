package service

import (
	"context"
	"errors"

	autherrors "hotelms/internal/auth/errors"
	"hotelms/internal/auth/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
	"hotelms/pkg/password"
	"hotelms/pkg/sanitizer"
	"hotelms/pkg/token"
	"hotelms/pkg/validation"
)

const (
	MsgRegistered         = "User registered"
	MsgLoggedIn           = "Login success"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgTokenInvalid       = "Token invalid"
	MsgUserNotFound       = "User not found"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Authenticate(ctx context.Context, raw string) (*model.User, error)
	EnsureAdmin(ctx context.Context, name, email, plain string) error
}

type authService struct {
	repo      repository.UserRepository
	issuer    *token.Issuer
	validator *validation.Validator
	cfg       *config.Config
}

func NewAuthService(
	repo repository.UserRepository,
	issuer *token.Issuer,
	validator *validation.Validator,
	cfg *config.Config,
) AuthService {
	return &authService{
		repo:      repo,
		issuer:    issuer,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Role = sanitizer.NormalizeKeyword(req.Role)
	if req.Role == "" {
		req.Role = model.RoleStaff
	}
	if err := s.validator.Struct(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, validation.AppError(err)
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.Duplicate(MsgUserExists)
	}
	if !errors.Is(err, autherrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	hash, err := password.Hash(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicate) {
			return nil, apperrors.Duplicate(MsgUserExists)
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID.Hex(), "role", user.Role)
	return s.respond(MsgRegistered, user)
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.InvalidInput(MsgInvalidCredentials)
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if !password.Verify(user.Password, req.Password) {
		s.cfg.Log.Warn("Login rejected", "id", user.ID.Hex())
		return nil, apperrors.InvalidInput(MsgInvalidCredentials)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID.Hex(), "role", user.Role)
	return s.respond(MsgLoggedIn, user)
}

// Authenticate resolves a bearer token to the stored user. It backs the
// request auth gate.
func (s *authService) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	claims, err := s.issuer.Parse(raw)
	if err != nil {
		return nil, apperrors.Unauthorized(MsgTokenInvalid)
	}

	user, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) || errors.Is(err, autherrors.ErrInvalidID) {
			return nil, apperrors.Unauthorized(MsgUserNotFound)
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}

	return user, nil
}

// EnsureAdmin creates the seed admin account unless the email is taken.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, plain string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.cfg.Log.Debug("Admin account already present", "email", email)
		return nil
	}
	if !errors.Is(err, autherrors.ErrNotFound) {
		return err
	}

	hash, err := password.Hash(plain, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     model.RoleAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil && !errors.Is(err, autherrors.ErrDuplicate) {
		return err
	}

	s.cfg.Log.Info("Admin account seeded", "id", admin.ID.Hex())
	return nil
}

func (s *authService) respond(message string, user *model.User) (*model.AuthResponse, error) {
	signed, err := s.issuer.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &model.AuthResponse{
		Message: message,
		Token:   signed,
		User:    user.Public(),
	}, nil
}
