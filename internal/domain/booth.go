package domain

import "time"

// BoothLocation is a named spot with at most one claiming team at a time
type BoothLocation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BoothAvailability pairs a booth with its live occupancy
type BoothAvailability struct {
	BoothLocation
	Occupied bool `json:"occupied"`
}
