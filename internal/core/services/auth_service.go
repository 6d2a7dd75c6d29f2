package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/google/uuid"
)

type AuthService struct {
	repo         domain.UserRepository
	tokens       *TokenService
	demoPassword string
}

// NewAuthService wires sign-in. repo may be nil, in which case only the demo
// password is accepted.
func NewAuthService(repo domain.UserRepository, tokens *TokenService, demoPassword string) *AuthService {
	return &AuthService{
		repo:         repo,
		tokens:       tokens,
		demoPassword: demoPassword,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type SignInResult struct {
	User  *domain.User
	Token string
	Demo  bool
}

func (s *AuthService) AccountsEnabled() bool {
	return s.repo != nil
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if s.repo == nil {
		return nil, domain.ErrAccountsDisabled
	}

	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// SignIn checks credentials and issues a token. The demo password always
// signs in as the local-only demo identity without touching the database.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if s.demoPassword != "" && password == s.demoPassword {
		token, err := s.tokens.GenerateToken(domain.DemoIdentity())
		if err != nil {
			return nil, err
		}
		return &SignInResult{User: domain.DemoUser(), Token: token, Demo: true}, nil
	}

	if s.repo == nil {
		return nil, domain.ErrAccountsDisabled
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(domain.Identity{UserID: user.ID})
	if err != nil {
		return nil, err
	}
	return &SignInResult{User: user, Token: token}, nil
}
