package domain

import "time"

type TerminalType string

const (
	TerminalMainStation TerminalType = "main_station"
	TerminalSubStation  TerminalType = "sub_station"
	TerminalPickupPoint TerminalType = "pickup_point"
	TerminalDropOff     TerminalType = "drop_off"
)

type Terminal struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name" gorm:"uniqueIndex;size:100"`
	TerminalType TerminalType `json:"terminal_type" gorm:"size:20"`
	Region       string       `json:"region" gorm:"size:20;index"`
	CityTown     string       `json:"city_town"`
	Address      string       `json:"address" gorm:"type:text"`
	GPSAddress   string       `json:"gps_address,omitempty" gorm:"size:20"`
	ContactPhone string       `json:"contact_phone,omitempty" gorm:"size:15"`
	IsActive     bool         `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
