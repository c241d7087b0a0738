package fleet

import "time"

type CreateTerminalRequest struct {
	Name         string `json:"name" binding:"required,min=3"`
	TerminalType string `json:"terminal_type" binding:"required"`
	Region       string `json:"region" binding:"required,ghanaregion"`
	CityTown     string `json:"city_town" binding:"required"`
	Address      string `json:"address" binding:"required"`
	GPSAddress   string `json:"gps_address"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,ghanaphone"`
}

type UpdateTerminalRequest struct {
	Name         string `json:"name,omitempty"`
	TerminalType string `json:"terminal_type,omitempty"`
	CityTown     string `json:"city_town,omitempty"`
	Address      string `json:"address,omitempty"`
	GPSAddress   string `json:"gps_address,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty" binding:"omitempty,ghanaphone"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

type CreateBusRequest struct {
	PlateNumber    string `json:"plate_number" binding:"required"`
	BusType        string `json:"bus_type" binding:"required"`
	TotalSeats     int    `json:"total_seats" binding:"required,min=10,max=80"`
	Manufacturer   string `json:"manufacturer"`
	Model          string `json:"model"`
	YearOfMake     int    `json:"year_of_manufacture"`
	HasAC          bool   `json:"has_ac"`
	HasWifi        bool   `json:"has_wifi"`
	HasToilet      bool   `json:"has_toilet"`
	HomeTerminalID *int64 `json:"home_terminal_id"`
}

type UpdateBusRequest struct {
	PlateNumber    string     `json:"plate_number,omitempty"`
	BusType        string     `json:"bus_type,omitempty"`
	TotalSeats     int        `json:"total_seats,omitempty" binding:"omitempty,min=10,max=80"`
	Manufacturer   string     `json:"manufacturer,omitempty"`
	Model          string     `json:"model,omitempty"`
	YearOfMake     int        `json:"year_of_manufacture,omitempty"`
	HasAC          *bool      `json:"has_ac,omitempty"`
	HasWifi        *bool      `json:"has_wifi,omitempty"`
	HasToilet      *bool      `json:"has_toilet,omitempty"`
	HomeTerminalID *int64     `json:"home_terminal_id,omitempty"`
	LastServicedAt *time.Time `json:"last_serviced_at,omitempty"`
}

type UpdateBusStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateRouteRequest struct {
	Name              string  `json:"name" binding:"required"`
	OriginID          int64   `json:"origin_terminal_id" binding:"required"`
	DestinationID     int64   `json:"destination_terminal_id" binding:"required"`
	DistanceKM        float64 `json:"distance_km" binding:"required,gt=0"`
	EstimatedDuration int     `json:"estimated_duration_minutes" binding:"required,gt=0"`
	BaseFare          float64 `json:"base_fare" binding:"required,gt=0"`
}

type UpdateRouteRequest struct {
	DistanceKM        float64 `json:"distance_km,omitempty" binding:"omitempty,gt=0"`
	EstimatedDuration int     `json:"estimated_duration_minutes,omitempty" binding:"omitempty,gt=0"`
	BaseFare          float64 `json:"base_fare,omitempty" binding:"omitempty,gt=0"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// FleetStats is the admin dashboard rollup.
type FleetStats struct {
	BusesByStatus map[string]int64 `json:"buses_by_status"`
	BusesByType   map[string]int64 `json:"buses_by_type"`
	TotalSeats    int64            `json:"total_seats"`
	Terminals     int64            `json:"terminals"`
	ActiveRoutes  int64            `json:"active_routes"`
}
