package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

type UserService struct {
	store  store.Store
	creds  *Credentials
	tokens *Tokens
}

func NewUserService(s store.Store, creds *Credentials, tokens *Tokens) *UserService {
	return &UserService{store: s, creds: creds, tokens: tokens}
}

// Register creates a user. Duplicate usernames or emails are a conflict.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := checkForm(&req); err != nil {
		return nil, err
	}
	hash, err := s.creds.Hash(req.Password)
	if err != nil {
		return nil, Internal(err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			if strings.Contains(err.Error(), "email") {
				return nil, &Error{Kind: KindConflict, Message: MsgEmailTaken, Err: err}
			}
			return nil, &Error{Kind: KindConflict, Message: MsgUsernameTaken, Err: err}
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords are reported the same way.
func (s *UserService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	req.Normalize()
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Authentication(MsgInvalidCredentials)
		}
		return nil, Internal(err)
	}
	if err := s.creds.Verify(req.Password, user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Login authenticates and issues an access and refresh token pair.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Authentication(MsgInvalidToken)
		}
		return nil, Internal(err)
	}
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*models.AuthResponse, error) {
	access, err := s.tokens.Issue(user)
	if err != nil {
		return nil, Internal(err)
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, Internal(fmt.Errorf("failed to generate refresh token: %w", err))
	}
	return &models.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		Username:     user.Username,
		UserID:       user.ID,
	}, nil
}
