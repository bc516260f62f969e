package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamestore/internal/domain"
	tokenrepo "gamestore/internal/repository/token"
	userrepo "gamestore/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup, login and role administration. Signup never
// assigns a role; roles are granted only through GrantRoles, itself gated to
// owners at the HTTP layer.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

// Signup registers a new regular user.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.InvalidInput("valid email required")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.InvalidInput("username required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.InvalidInput(fmt.Sprintf("password must be at least %d characters", s.passwordMin))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		AvatarURL:    strings.TrimSpace(in.AvatarURL),
	})
}

// Login verifies credentials and issues an access and a refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LookupByToken resolves an access token to its user, roles included.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token, "access")
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	meta, ok := s.tokens.Validate(ctx, refreshToken, "refresh")
	if !ok {
		return "", ErrInvalidToken
	}
	return s.tokens.Issue(ctx, meta.UserID, "access", s.accessTTL)
}

// GrantRoles replaces a user's role set. Only an owner reaches this code
// path; there is no way to acquire a role at signup.
func (s *Service) GrantRoles(ctx context.Context, userID string, roles []string) error {
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		if !domain.ValidRole(role) {
			return domain.InvalidInput(fmt.Sprintf("unknown role %q", role))
		}
		if seen[role] {
			return domain.InvalidInput(fmt.Sprintf("duplicate role %q", role))
		}
		seen[role] = true
	}
	return s.repo.SetRoles(ctx, userID, roles)
}

// AccessTTLSeconds reports the access token lifetime for token responses.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL / time.Second)
}
