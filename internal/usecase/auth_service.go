package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/user"
	idgen "github.com/riskibarqy/survivor-league/internal/platform/id"
)

const tempPasswordLength = 12

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresAt time.Time, err error)
}

type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	userRepo       user.Repository
	membershipRepo membership.Repository
	issuer         TokenIssuer
	idGen          idgen.Generator
	now            func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	membershipRepo membership.Repository,
	issuer TokenIssuer,
	idGen idgen.Generator,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		issuer:         issuer,
		idGen:          idGen,
		now:            time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return user.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Email
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}
	if exists {
		return user.User{}, fmt.Errorf("%w: email is already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	u := user.User{
		ID:           userID,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		// Same rejection as a wrong password so the endpoint does not leak
		// which emails exist.
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, expiresAt, err := s.issuer.Issue(user.Principal{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GetProfile")
	defer span.End()

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ChangePassword")
	defer span.End()

	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password does not match", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// ResetMemberPassword lets a league admin hand a locked-out member a fresh
// temporary password. The plaintext is returned once for out-of-band delivery
// and stored only as a hash.
func (s *AuthService) ResetMemberPassword(ctx context.Context, leagueID, adminUserID, memberUserID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ResetMemberPassword")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	memberUserID = strings.TrimSpace(memberUserID)
	if leagueID == "" || memberUserID == "" {
		return "", fmt.Errorf("%w: league id and member id are required", ErrInvalidInput)
	}

	admin, exists, err := s.membershipRepo.Get(ctx, leagueID, adminUserID)
	if err != nil {
		return "", fmt.Errorf("get admin membership: %w", err)
	}
	if !exists || !admin.IsLeagueAdmin() {
		return "", fmt.Errorf("%w: league admin required", ErrForbidden)
	}

	_, exists, err = s.membershipRepo.Get(ctx, leagueID, memberUserID)
	if err != nil {
		return "", fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: member=%s", ErrNotFound, memberUserID)
	}

	tempPassword, err := s.idGen.NewShortCode(tempPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, memberUserID, string(hash)); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}

	return tempPassword, nil
}
