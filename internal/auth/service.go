package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrFieldsRequired = errors.New("username and password are required")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles account creation and credential verification.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Register creates a regular user account. The plaintext password is hashed
// with bcrypt and never stored.
func (s *Service) Register(username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	var existing entities.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no admin
// exists yet. It is idempotent and safe to run on every startup; if two
// instances race, the loser's create hits the unique-username constraint
// and is treated as success.
func (s *Service) EnsureDefaultAdmin(username, password string) error {
	var count int64
	err := s.db.Model(&entities.User{}).
		Where("role = ?", entities.UserRoleAdmin).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entities.User{
		Username:     username,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		// Another instance created the account between the check and the
		// insert. The constraint violation means the job is done.
		var existing entities.User
		if lookupErr := s.db.Where("username = ?", username).First(&existing).Error; lookupErr == nil {
			return nil
		}
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Printf("Created default admin user %q. Rotate this credential before exposing the service.", username)
	return nil
}

// HasUsers returns true if any users exist in the database.
func (s *Service) HasUsers() (bool, error) {
	var count int64
	err := s.db.Model(&entities.User{}).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}
