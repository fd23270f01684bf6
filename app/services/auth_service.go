package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/repositories"
)

type UserView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type SignUpInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput accepts either an email address or a username as Identifier.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	hasher   PasswordHasher
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, hasher PasswordHasher) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher}
}

// SignUp registers a VIEW_ONLY user.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*UserView, error) {
	return s.CreateUser(ctx, in, models.RoleViewOnly)
}

// CreateUser registers a user with an explicit role.
func (s *AuthService) CreateUser(ctx context.Context, in SignUpInput, role models.Role) (*UserView, error) {
	verr := validateStruct(in)
	if !role.Valid() {
		verr.Add("role", "Role must be ADMIN or VIEW_ONLY.")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, conflict("Email is already registered")
	}
	existing, err = s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, conflict("Username is already taken")
	}

	hashed, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           strings.TrimSpace(in.Name),
		Username:       strings.TrimSpace(in.Username),
		Email:          in.Email,
		HashedPassword: string(hashed),
		Role:           role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("AuthService: registered user %s with role %s", user.ID, user.Role)
	view := NewUserView(user)
	return &view, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*UserView, error) {
	if err := validateStruct(in).orNil(); err != nil {
		return nil, err
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(in.Identifier, "@") {
		user, err = s.userRepo.FindByEmail(ctx, in.Identifier)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, in.Identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		log.Printf("AuthService.Login: password mismatch for user %s", user.ID)
		return nil, ErrInvalidCredentials
	}

	view := NewUserView(user)
	return &view, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views, nil
}

// SetRole changes userID's role. An admin cannot change their own role.
func (s *AuthService) SetRole(ctx context.Context, actorID, userID string, role models.Role) (*UserView, error) {
	if !role.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"role": "Role must be ADMIN or VIEW_ONLY."}}
	}
	if actorID == userID {
		return nil, forbidden("You cannot change your own role")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role

	log.Printf("AuthService: user %s set role of %s to %s", actorID, userID, role)
	view := NewUserView(user)
	return &view, nil
}
