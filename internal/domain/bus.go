package domain

import "time"

type BusType string

const (
	BusStandard  BusType = "standard"
	BusLuxury    BusType = "luxury"
	BusVIP       BusType = "vip"
	BusExecutive BusType = "executive"
	BusSleeper   BusType = "sleeper"
)

type BusStatus string

const (
	BusActive       BusStatus = "active"
	BusMaintenance  BusStatus = "maintenance"
	BusOutOfService BusStatus = "out_of_service"
	BusRetired      BusStatus = "retired"
)

var busFlow = map[BusStatus][]BusStatus{
	BusActive:       {BusMaintenance, BusOutOfService, BusRetired},
	BusMaintenance:  {BusActive, BusOutOfService, BusRetired},
	BusOutOfService: {BusActive, BusMaintenance, BusRetired},
}

// CanTransitionTo reports whether a bus may move to next. Retired is
// terminal.
func (s BusStatus) CanTransitionTo(next BusStatus) bool {
	for _, allowed := range busFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Bus struct {
	ID             int64      `json:"id"`
	BusNumber      string     `json:"bus_number" gorm:"uniqueIndex;size:10"`
	PlateNumber    string     `json:"plate_number" gorm:"uniqueIndex;size:15"`
	BusType        BusType    `json:"bus_type" gorm:"size:20"`
	Status         BusStatus  `json:"status" gorm:"size:20;index"`
	TotalSeats     int        `json:"total_seats"`
	Manufacturer   string     `json:"manufacturer,omitempty" gorm:"size:50"`
	Model          string     `json:"model,omitempty" gorm:"size:50"`
	YearOfMake     int        `json:"year_of_manufacture,omitempty"`
	HasAC          bool       `json:"has_ac"`
	HasWifi        bool       `json:"has_wifi"`
	HasToilet      bool       `json:"has_toilet"`
	HomeTerminalID *int64     `json:"home_terminal_id,omitempty" gorm:"index"`
	HomeTerminal   *Terminal  `json:"home_terminal,omitempty" gorm:"foreignKey:HomeTerminalID"`
	LastServicedAt *time.Time `json:"last_serviced_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
