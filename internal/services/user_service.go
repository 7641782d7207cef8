package services

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
)

type UserService interface {
	Register(name, email, phone, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateProfile(actor Actor, user *models.User) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

var registerEmailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

func (s *userService) Register(name, email, phone, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(name) < 2 {
		return nil, apperr.New(apperr.ValidationFailed, "Name must be at least 2 characters")
	}
	if !registerEmailRe.MatchString(email) {
		return nil, apperr.New(apperr.ValidationFailed, "Please provide a valid email")
	}
	if len(password) < 6 {
		return nil, apperr.New(apperr.ValidationFailed, "Password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "An account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         string(models.RoleUser),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}
	// Same error for unknown email and wrong password.
	if user == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid credentials")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "Account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid credentials")
	}
	return user, nil
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return user, nil
}

func (s *userService) UpdateProfile(actor Actor, user *models.User) error {
	if actor.ID != user.ID && !actor.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Not authorized to update this profile")
	}

	existing, err := s.userRepo.GetByID(user.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}
	if existing == nil {
		return apperr.New(apperr.NotFound, "User not found")
	}

	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.Street = user.Street
	existing.City = user.City
	existing.State = user.State
	existing.Pincode = user.Pincode

	if err := s.userRepo.Update(existing); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update profile", err)
	}
	return nil
}
