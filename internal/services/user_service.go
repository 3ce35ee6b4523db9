package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
}

func NewUserService(db *gorm.DB, tokens *auth.TokenIssuer) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

// Register creates an account and returns it with a signed token.
func (s *UserService) Register(req *dtos.RegisterRequest) (*models.User, string, error) {
	role := req.Role
	if role == "" {
		role = models.RoleJobSeeker
	}
	if !models.ValidRole(role) {
		return nil, "", apperr.Validation("Invalid role specified")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, "", apperr.FromDB(err, "", "User already exists with this email")
	}

	token, err := s.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

// Login verifies credentials and stamps LastLogin. Inactive accounts
// cannot log in even with a correct password.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("Invalid credentials")
		}
		return nil, "", apperr.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}
	if !user.Active() {
		return nil, "", apperr.Unauthorized("Account is deactivated")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, "", apperr.Internal(err)
	}

	token, err := s.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return &user, token, nil
}

// Get loads a user by id.
func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "User not found", "")
	}
	return &user, nil
}

// UpdateDetails changes name and/or email. Role is deliberately not
// updatable here; only an admin may change roles.
func (s *UserService) UpdateDetails(id uuid.UUID, req *dtos.UpdateDetailsRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, apperr.FromDB(err, "", "User already exists with this email")
		}
	}
	return user, nil
}

// UpdatePassword verifies the current password, stores the new hash and
// returns a fresh token.
func (s *UserService) UpdatePassword(id uuid.UUID, current, newPassword string) (string, error) {
	user, err := s.Get(id)
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, current) {
		return "", apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if err := s.DB.Model(user).Update("password_hash", hash).Error; err != nil {
		return "", apperr.Internal(err)
	}

	token, err := s.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}
