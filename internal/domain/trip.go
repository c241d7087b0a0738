package domain

import "time"

type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripBoarding  TripStatus = "boarding"
	TripInTransit TripStatus = "in_transit"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Trip is a scheduled departure of a bus on a route. AvailableSeats is
// the single source of truth for capacity: it only moves through
// ReserveSeats/ReleaseSeats and always stays within [0, TotalSeats].
type Trip struct {
	ID             int64      `json:"id"`
	RouteID        int64      `json:"route_id" gorm:"index"`
	Route          *Route     `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	BusID          int64      `json:"bus_id" gorm:"index"`
	Bus            *Bus       `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	DepartureTime  time.Time  `json:"departure_time" gorm:"index"`
	ArrivalTime    time.Time  `json:"arrival_time"`
	Fare           float64    `json:"fare"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	Status         TripStatus `json:"status" gorm:"size:20;index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (s TripStatus) Bookable() bool {
	return s == TripScheduled || s == TripBoarding
}

var tripFlow = map[TripStatus][]TripStatus{
	TripScheduled: {TripBoarding, TripInTransit, TripCancelled},
	TripBoarding:  {TripInTransit, TripCancelled},
	TripInTransit: {TripCompleted},
}

// CanTransitionTo reports whether moving to next follows the trip
// lifecycle. Completed and cancelled are terminal.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
