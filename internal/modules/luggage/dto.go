package luggage

import "kayexpress/internal/domain"

type CreateLuggageTypeRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=50"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	MaxWeightKG float64 `json:"max_weight_kg" binding:"required,gt=0"`
	BasePrice   float64 `json:"base_price" binding:"omitempty,gte=0"`
	PricePerKG  float64 `json:"price_per_kg" binding:"omitempty,gte=0"`
}

type UpdateLuggageTypeRequest struct {
	Description string   `json:"description,omitempty"`
	MaxWeightKG float64  `json:"max_weight_kg,omitempty" binding:"omitempty,gt=0"`
	BasePrice   *float64 `json:"base_price,omitempty" binding:"omitempty,gte=0"`
	PricePerKG  *float64 `json:"price_per_kg,omitempty" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type CheckInLuggageRequest struct {
	BookingReference string  `json:"booking_reference" binding:"required"`
	LuggageTypeID    int64   `json:"luggage_type_id" binding:"required,gt=0"`
	WeightKG         float64 `json:"weight_kg" binding:"required,gt=0"`
	Description      string  `json:"description" binding:"omitempty,max=500"`
	IsValuable       bool    `json:"is_valuable"`
	DeclaredValue    float64 `json:"declared_value" binding:"omitempty,gte=0"`
}

type AddEventRequest struct {
	Status   string `json:"status" binding:"required"`
	Location string `json:"location" binding:"omitempty,max=120"`
	Notes    string `json:"notes" binding:"omitempty,max=500"`
}

// TrackView is the public tracking payload. Anyone holding the tag can
// look it up, so the owner's contact details are masked.
type TrackView struct {
	Reference  string                `json:"reference_number"`
	Status     domain.LuggageStatus  `json:"status"`
	TypeName   string                `json:"luggage_type,omitempty"`
	WeightKG   float64               `json:"weight_kg"`
	OwnerPhone string                `json:"owner_phone,omitempty"`
	Events     []domain.LuggageEvent `json:"events"`
}
