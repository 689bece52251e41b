package services

import (
	"errors"
	"fmt"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type UserService struct {
	userRepo   UserStore
	bcryptCost int
}

func NewUserService(userRepo UserStore, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a regular user
func (s *UserService) Signup(email, name, password, passwordConfirm string) (*models.User, error) {
	return s.createUser(email, name, password, passwordConfirm, false)
}

// CreateAdmin registers a user with the admin flag set
func (s *UserService) CreateAdmin(email, name, password string) (*models.User, error) {
	return s.createUser(email, name, password, password, true)
}

func (s *UserService) createUser(email, name, password, passwordConfirm string, isAdmin bool) (*models.User, error) {
	if password != passwordConfirm {
		return nil, &models.ValidationError{Field: "password_confirm", Message: "The two password fields didn't match"}
	}
	if len(password) < minPasswordLength {
		return nil, &models.ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, name)
	user.PasswordHash = string(hash)
	user.IsAdmin = isAdmin

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithField("user_id", user.ID).Info("User signed up")
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails, inactive users
// and wrong passwords all yield models.ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, models.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.userRepo.GetByID(userID.String())
}
