package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
)

type FacilityRepository struct {
	DB *sql.DB
}

func NewFacilityRepository(database *sql.DB) *FacilityRepository {
	return &FacilityRepository{DB: database}
}

const facilityColumns = `
	id, name, location, capacity, COALESCE(description, ''), amenities,
	COALESCE(facility_type, ''), COALESCE(image_url, ''),
	requires_approval, is_active, created_at, updated_at`

func scanFacility(row interface{ Scan(...any) error }) (*db.Facility, error) {
	var f db.Facility
	err := row.Scan(
		&f.ID, &f.Name, &f.Location, &f.Capacity, &f.Description,
		pq.Array(&f.Amenities),
		&f.FacilityType, &f.ImageURL,
		&f.RequiresApproval, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetActive returns a facility only if it exists and is active. Inactive
// facilities are invisible to booking and availability operations.
func (r *FacilityRepository) GetActive(id int64) (*db.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1 AND is_active = TRUE`
	f, err := scanFacility(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("facility %d not found", id)
		}
		return nil, fmt.Errorf("error querying facility: %w", err)
	}
	return f, nil
}

// ListActive returns active facilities matching the filter, ordered by name.
func (r *FacilityRepository) ListActive(filter entities.FacilityFilter) ([]db.Facility, error) {
	query := `SELECT ` + facilityColumns + `
		FROM facilities
		WHERE is_active = TRUE
		  AND ($1 = '' OR facility_type = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR location ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		  AND ($3::int IS NULL OR capacity >= $3)
		  AND ($4::int IS NULL OR capacity <= $4)
		ORDER BY name`
	rows, err := r.DB.Query(query, filter.Type, filter.Search, filter.MinCapacity, filter.MaxCapacity)
	if err != nil {
		return nil, fmt.Errorf("error querying facilities: %w", err)
	}
	defer rows.Close()

	var facilities []db.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning facility row: %w", err)
		}
		facilities = append(facilities, *f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating facility rows: %w", err)
	}
	return facilities, nil
}

func (r *FacilityRepository) Create(f *db.Facility) error {
	query := `
		INSERT INTO facilities (name, location, capacity, description, amenities, facility_type, image_url, requires_approval, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		f.Name, f.Location, f.Capacity, nullIfEmpty(f.Description),
		pq.Array(f.Amenities), nullIfEmpty(f.FacilityType), nullIfEmpty(f.ImageURL),
		f.RequiresApproval,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating facility: %w", err)
	}
	f.IsActive = true
	return nil
}

func (r *FacilityRepository) Update(f *db.Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, location = $3, capacity = $4, description = $5, amenities = $6,
		    facility_type = $7, image_url = $8, requires_approval = $9, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		f.ID, f.Name, f.Location, f.Capacity, nullIfEmpty(f.Description),
		pq.Array(f.Amenities), nullIfEmpty(f.FacilityType), nullIfEmpty(f.ImageURL),
		f.RequiresApproval,
	).Scan(&f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("facility %d not found", f.ID)
		}
		return fmt.Errorf("error updating facility: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a facility. Records are never physically removed.
func (r *FacilityRepository) Deactivate(id int64) error {
	result, err := r.DB.Exec(
		`UPDATE facilities SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("error deactivating facility: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("facility %d not found", id)
	}
	return nil
}
