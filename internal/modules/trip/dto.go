package trip

import "time"

type CreateTripRequest struct {
	RouteID       int64      `json:"route_id" binding:"required"`
	BusID         int64      `json:"bus_id" binding:"required"`
	DepartureTime time.Time  `json:"departure_time" binding:"required"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Fare          float64    `json:"fare" binding:"omitempty,gt=0"`
}

type UpdateTripRequest struct {
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Fare          float64    `json:"fare" binding:"omitempty,gt=0"`
}

type UpdateTripStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}
