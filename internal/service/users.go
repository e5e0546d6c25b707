package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of register and login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ==========================
// UserService
// ==========================
type UserService struct {
	store DocumentStore
	auth  *auth.Authenticator
	newID func() string
	now   func() time.Time
}

func NewUserService(store DocumentStore, a *auth.Authenticator) *UserService {
	return &UserService{store: store, auth: a, newID: uuid.NewString, now: time.Now}
}

// Register creates a user with a unique email and returns a signed-in session.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := validateInput(in, "email, password and username are required"); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &ValidationError{Message: "password is too long", Fields: map[string]string{"password": "max"}}
	}
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           s.newID(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UnixMilli(),
	}
	err = s.store.Update(ctx, func(doc *models.Document) error {
		if doc.FindUserByEmail(in.Email) != nil {
			return fmt.Errorf("email already registered: %w", ErrConflict)
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return s.session(user)
}

// Login checks the password for the account with in.Email.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := validateInput(in, "email and password are required"); err != nil {
		return nil, err
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.FindUserByEmail(in.Email)
	if user == nil || !s.auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.session(*user)
}

// Profile returns the caller's identity and the posts they wrote, newest first.
func (s *UserService) Profile(ctx context.Context, caller *auth.Claims) (*models.Profile, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	mine := []models.Post{}
	for _, p := range doc.Posts {
		if p.AuthorID == caller.ID {
			mine = append(mine, p)
		}
	}
	sortNewestFirst(mine)

	return &models.Profile{
		ID:       caller.ID,
		Email:    caller.Email,
		Username: caller.Username,
		MyPosts:  mine,
	}, nil
}

func (s *UserService) session(user models.User) (*Session, error) {
	token, err := s.auth.IssueToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user.Public()}, nil
}
