package domain

import "time"

type Route struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name" gorm:"uniqueIndex;size:100"`
	OriginID          int64     `json:"origin_terminal_id" gorm:"index"`
	Origin            *Terminal `json:"origin_terminal,omitempty" gorm:"foreignKey:OriginID"`
	DestinationID     int64     `json:"destination_terminal_id" gorm:"index"`
	Destination       *Terminal `json:"destination_terminal,omitempty" gorm:"foreignKey:DestinationID"`
	DistanceKM        float64   `json:"distance_km"`
	EstimatedDuration int       `json:"estimated_duration_minutes"`
	BaseFare          float64   `json:"base_fare"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
