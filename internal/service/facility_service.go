package service

import (
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
)

type FacilityService struct {
	Facilities FacilityStore
}

func NewFacilityService(facilities FacilityStore) *FacilityService {
	return &FacilityService{Facilities: facilities}
}

func (s *FacilityService) List(filter entities.FacilityFilter) ([]entities.FacilityResponse, error) {
	facilities, err := s.Facilities.ListActive(filter)
	if err != nil {
		return nil, err
	}
	list := make([]entities.FacilityResponse, 0, len(facilities))
	for i := range facilities {
		list = append(list, entities.FacilityResponseFrom(&facilities[i]))
	}
	return list, nil
}

func (s *FacilityService) Get(id int64) (*entities.FacilityResponse, error) {
	facility, err := s.Facilities.GetActive(id)
	if err != nil {
		return nil, err
	}
	resp := entities.FacilityResponseFrom(facility)
	return &resp, nil
}

func (s *FacilityService) Create(req entities.FacilityRequest) (*entities.FacilityResponse, error) {
	facility := &db.Facility{
		Name:             req.Name,
		Location:         req.Location,
		Capacity:         req.Capacity,
		Description:      req.Description,
		Amenities:        req.Amenities,
		FacilityType:     req.FacilityType,
		ImageURL:         req.ImageURL,
		RequiresApproval: req.RequiresApproval,
	}
	if facility.Amenities == nil {
		facility.Amenities = []string{}
	}
	if err := s.Facilities.Create(facility); err != nil {
		return nil, err
	}
	resp := entities.FacilityResponseFrom(facility)
	return &resp, nil
}

func (s *FacilityService) Update(id int64, req entities.FacilityRequest) (*entities.FacilityResponse, error) {
	facility, err := s.Facilities.GetActive(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		facility.Name = req.Name
	}
	if req.Location != "" {
		facility.Location = req.Location
	}
	if req.Capacity > 0 {
		facility.Capacity = req.Capacity
	}
	if req.Description != "" {
		facility.Description = req.Description
	}
	if req.Amenities != nil {
		facility.Amenities = req.Amenities
	}
	if req.FacilityType != "" {
		facility.FacilityType = req.FacilityType
	}
	if req.ImageURL != "" {
		facility.ImageURL = req.ImageURL
	}
	facility.RequiresApproval = req.RequiresApproval

	if err := s.Facilities.Update(facility); err != nil {
		return nil, err
	}
	resp := entities.FacilityResponseFrom(facility)
	return &resp, nil
}

// Delete deactivates a facility; bookings and history stay in place.
func (s *FacilityService) Delete(id int64) error {
	return s.Facilities.Deactivate(id)
}
