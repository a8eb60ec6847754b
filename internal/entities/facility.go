package entities

import (
	"time"

	"campusbooking/internal/db"
)

type FacilityRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Location         string   `json:"location" validate:"required,max=200"`
	Capacity         int      `json:"capacity" validate:"required,gt=0"`
	Description      string   `json:"description,omitempty"`
	Amenities        []string `json:"amenities,omitempty"`
	FacilityType     string   `json:"facility_type,omitempty" validate:"max=50"`
	ImageURL         string   `json:"image_url,omitempty"`
	RequiresApproval bool     `json:"requires_approval"`
}

type FacilityResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Capacity         int       `json:"capacity"`
	Description      string    `json:"description,omitempty"`
	Amenities        []string  `json:"amenities"`
	FacilityType     string    `json:"facility_type,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	RequiresApproval bool      `json:"requires_approval"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FacilityResponseFrom(f *db.Facility) FacilityResponse {
	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return FacilityResponse{
		ID:               f.ID,
		Name:             f.Name,
		Location:         f.Location,
		Capacity:         f.Capacity,
		Description:      f.Description,
		Amenities:        amenities,
		FacilityType:     f.FacilityType,
		ImageURL:         f.ImageURL,
		RequiresApproval: f.RequiresApproval,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

// FacilityFilter narrows the facility listing. Zero values mean "no filter".
type FacilityFilter struct {
	Type        string
	Search      string
	MinCapacity *int
	MaxCapacity *int
}
