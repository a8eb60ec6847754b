package entities

// Slot is one cell of a day's availability grid. Slots are derived per
// query and never persisted.
type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"` // available | confirmed | pending
	BookingID *int64 `json:"booking_id,omitempty"`
}

type DaySummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
}

type DayGrid struct {
	FacilityID int64      `json:"facility_id"`
	Date       string     `json:"date"`
	Slots      []Slot     `json:"slots"`
	Summary    DaySummary `json:"summary"`
}

type WeekDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
}

type WeekGrid struct {
	FacilityID int64     `json:"facility_id"`
	StartDate  string    `json:"start_date"`
	Days       []WeekDay `json:"days"`
}
