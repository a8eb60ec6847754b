package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	Users       UserStore
	jwtSecret   string
	adminSecret string
}

func NewAuthService(users UserStore, jwtSecret, adminSecret string) *AuthService {
	return &AuthService{Users: users, jwtSecret: jwtSecret, adminSecret: adminSecret}
}

// Register creates a user account. Registering with the admin role requires
// the out-of-band admin secret.
func (s *AuthService) Register(req entities.RegisterRequest, adminSecretHeader string) (*entities.AuthResponse, error) {
	email := strings.ToLower(req.Email)

	exists, err := s.Users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("email already registered")
	}

	role := db.RoleStudent
	if req.Role != "" {
		parsed, ok := db.ParseRole(strings.ToLower(req.Role))
		if !ok {
			return nil, apperr.Validation("invalid role: %s", req.Role)
		}
		role = parsed
	}
	if role == db.RoleAdmin {
		// An unset secret must disable admin registration, not open it.
		if s.adminSecret == "" {
			return nil, apperr.Forbidden("admin registration is disabled")
		}
		if adminSecretHeader != s.adminSecret {
			return nil, apperr.Validation("invalid admin secret")
		}
	}

	user := &db.User{
		Name:       req.Name,
		Email:      email,
		Role:       role,
		StudentID:  req.StudentID,
		Department: req.Department,
		Phone:      req.Phone,
	}
	if err := s.Users.Create(user, req.Password); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: entities.UserResponseFrom(user)}, nil
}

// Login verifies credentials and issues a JWT carrying the user id and role.
// Unknown emails and wrong passwords get the same answer.
func (s *AuthService) Login(req entities.LoginRequest) (*entities.AuthResponse, error) {
	user, err := s.Users.GetActiveByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Forbidden("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Forbidden("invalid email or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: entities.UserResponseFrom(user)}, nil
}

func (s *AuthService) Profile(userID int64) (*entities.UserResponse, error) {
	user, err := s.Users.GetActiveByID(userID)
	if err != nil {
		return nil, err
	}
	resp := entities.UserResponseFrom(user)
	return &resp, nil
}

func (s *AuthService) generateToken(u *db.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperr.Internal("error signing token", err)
	}
	return signed, nil
}
