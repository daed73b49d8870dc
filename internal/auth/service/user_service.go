package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/domain"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/dto"
	autherror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/logging"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/mailer"
)

const minPasswordLength = 8

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	denylist     *Denylist
	tickets      *ResetTicketStore
	mailer       mailer.Mailer
	log          logging.Logger
	resetTTL     time.Duration
	domainURL    string
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, denylist *Denylist,
	tickets *ResetTicketStore, m mailer.Mailer, log logging.Logger, resetMinutes int, domainURL string) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		denylist:     denylist,
		tickets:      tickets,
		mailer:       m,
		log:          log,
		resetTTL:     time.Duration(resetMinutes) * time.Minute,
		domainURL:    domainURL,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, autherror.Validation("username, email and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, autherror.Validation(fmt.Sprintf("password should be at least %d characters long", minPasswordLength))
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, autherror.Server(err)
	}
	if existingUser != nil {
		return nil, &autherror.Error{Kind: autherror.KindValidation, Err: autherror.ErrEmailAlreadyInUse}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, autherror.Server(err)
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, autherror.Server(err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.Validation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, autherror.Server(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.Unauthorized(autherror.ErrInvalidCredentials)
	}

	accessToken, _, err := s.tokenService.Issue(user)
	if err != nil {
		return nil, autherror.Server(err)
	}

	return &dto.LoginOutput{
		AccessToken: accessToken,
		User: dto.UserOutput{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
// The expiry comes from the token's own claims so the denylist entry can be
// pruned once the token would fail verification anyway.
func (s *UserService) Logout(token string, claims *JWTCustomClaims) {
	expiresAt := time.Now().Add(s.tokenService.GetAccessTokenExpiry())
	if claims != nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.denylist.Add(token, expiresAt)
}

func (s *UserService) Update(ctx context.Context, userID string, input dto.UpdateUserInput) (*domain.User, error) {
	if input.Username == "" && input.Email == "" {
		return nil, autherror.Validation("at least one of username or email must be provided")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, autherror.Server(err)
	}
	if user == nil {
		return nil, autherror.NotFound("user not found")
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, autherror.Server(err)
	}

	return user, nil
}

// Delete removes the account; owned contacts go with it via the schema's
// cascading foreign key.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return autherror.Server(err)
	}
	if user == nil {
		return autherror.NotFound("user not found")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return autherror.Server(err)
	}

	return nil
}

// RequestPasswordReset issues a fresh single-use ticket and dispatches the
// reset link by email in the background. The response is the same whether
// or not the email belongs to an account, so account existence is never
// leaked. Mail failures are logged and do not invalidate the ticket.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return autherror.Validation("email is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return autherror.Server(err)
	}
	if user == nil {
		return nil
	}

	ticket, err := s.tickets.Issue(email, s.resetTTL)
	if err != nil {
		return autherror.Server(err)
	}

	resetLink := fmt.Sprintf("%s/api/users/reset-password/%s", strings.TrimRight(s.domainURL, "/"), ticket)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.mailer.SendPasswordReset(sendCtx, user.Email, resetLink); err != nil {
			s.log.Error(sendCtx, "failed to send password reset email", "email", user.Email, "error", err)
		}
	}()

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, ticket string, input dto.ResetPasswordInput) error {
	if input.Email == "" || input.NewPassword == "" {
		return autherror.Validation("email and new password are required")
	}
	if input.NewPassword != input.ConfirmPassword {
		return &autherror.Error{Kind: autherror.KindValidation, Err: autherror.ErrPasswordMismatch}
	}
	if len(input.NewPassword) < minPasswordLength {
		return autherror.Validation(fmt.Sprintf("password should be at least %d characters long", minPasswordLength))
	}

	if err := s.tickets.Claim(input.Email, ticket); err != nil {
		return &autherror.Error{Kind: autherror.KindValidation, Err: err}
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return autherror.Server(err)
	}
	if user == nil {
		return autherror.NotFound("user not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return autherror.Server(err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return autherror.Server(err)
	}

	return nil
}
