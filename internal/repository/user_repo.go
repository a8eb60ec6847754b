package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `
	id, name, email, password_hash, role, COALESCE(student_id, ''),
	COALESCE(department, ''), COALESCE(phone, ''), is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*db.User, error) {
	var u db.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.StudentID,
		&u.Department, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetActiveByEmail returns nil without error when no active user matches,
// so callers can give one "invalid credentials" answer for both cases.
func (r *UserRepository) GetActiveByEmail(email string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`
	u, err := scanUser(r.DB.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetActiveByID(id int64) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	u, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user email: %w", err)
	}
	return exists, nil
}

// Create hashes the password with bcrypt and inserts the user.
func (r *UserRepository) Create(u *db.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	u.PasswordHash = string(hashed)

	query := `
		INSERT INTO users (name, email, password_hash, role, student_id, department, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id, created_at, updated_at`
	err = r.DB.QueryRow(query,
		u.Name, u.Email, u.PasswordHash, u.Role,
		nullIfEmpty(u.StudentID), nullIfEmpty(u.Department), nullIfEmpty(u.Phone),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	u.IsActive = true
	return nil
}
