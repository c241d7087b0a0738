package domain

import "time"

type LuggageStatus string

const (
	LuggageRegistered LuggageStatus = "registered"
	LuggageLoaded     LuggageStatus = "loaded"
	LuggageInTransit  LuggageStatus = "in_transit"
	LuggageArrived    LuggageStatus = "arrived"
	LuggageCollected  LuggageStatus = "collected"
	LuggageUnclaimed  LuggageStatus = "unclaimed"
	LuggageLost       LuggageStatus = "lost"
	LuggageDamaged    LuggageStatus = "damaged"
)

type LuggageType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:50"`
	Description string    `json:"description,omitempty"`
	MaxWeightKG float64   `json:"max_weight_kg"`
	BasePrice   float64   `json:"base_price"`
	PricePerKG  float64   `json:"price_per_kg"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Luggage is a registered piece of checked baggage tied to a booking.
// The handling fee is base price plus weight charge, with an optional
// 1% insurance premium on the declared value of valuable items.
type Luggage struct {
	ID            int64         `json:"id"`
	Reference     string        `json:"reference_number" gorm:"uniqueIndex;size:20"`
	BookingID     int64         `json:"booking_id" gorm:"index"`
	Booking       *Booking      `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	LuggageTypeID int64         `json:"luggage_type_id" gorm:"index"`
	LuggageType   *LuggageType  `json:"luggage_type,omitempty" gorm:"foreignKey:LuggageTypeID"`
	Description   string        `json:"description"`
	WeightKG      float64       `json:"weight_kg"`
	IsValuable    bool          `json:"is_valuable"`
	DeclaredValue float64       `json:"declared_value,omitempty"`
	HandlingFee   float64       `json:"handling_fee"`
	InsuranceFee  float64       `json:"insurance_fee"`
	Status        LuggageStatus `json:"status" gorm:"size:20;index"`
	CollectedAt   *time.Time    `json:"collected_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// LuggageEvent is one entry in a piece of luggage's tracking history.
type LuggageEvent struct {
	ID         int64         `json:"id"`
	LuggageID  int64         `json:"luggage_id" gorm:"index"`
	Status     LuggageStatus `json:"status" gorm:"size:20"`
	Location   string        `json:"location,omitempty"`
	Notes      string        `json:"notes,omitempty"`
	RecordedBy int64         `json:"recorded_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

const InsuranceRate = 0.01

// HandlingFeeFor computes the fee for a piece of luggage of the given
// weight using a type's pricing.
func (t LuggageType) HandlingFeeFor(weightKG float64) float64 {
	return t.BasePrice + t.PricePerKG*weightKG
}

var luggageFlow = map[LuggageStatus][]LuggageStatus{
	LuggageRegistered: {LuggageLoaded, LuggageLost, LuggageDamaged},
	LuggageLoaded:     {LuggageInTransit, LuggageLost, LuggageDamaged},
	LuggageInTransit:  {LuggageArrived, LuggageLost, LuggageDamaged},
	LuggageArrived:    {LuggageCollected, LuggageUnclaimed, LuggageLost, LuggageDamaged},
	LuggageUnclaimed:  {LuggageCollected, LuggageLost, LuggageDamaged},
}

// CanTransitionTo reports whether moving to next follows the handling
// flow. Collected, lost and damaged are terminal.
func (s LuggageStatus) CanTransitionTo(next LuggageStatus) bool {
	for _, allowed := range luggageFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
