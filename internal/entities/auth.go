package entities

import (
	"campusbooking/internal/db"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role,omitempty"`
	StudentID  string `json:"student_id,omitempty" validate:"max=50"`
	Department string `json:"department,omitempty" validate:"max=100"`
	Phone      string `json:"phone,omitempty" validate:"max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func UserResponseFrom(u *db.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		StudentID:  u.StudentID,
		Department: u.Department,
		Phone:      u.Phone,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
