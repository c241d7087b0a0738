package domain

import "time"

type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteQuoted    QuoteStatus = "quoted"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteCompleted QuoteStatus = "completed"
)

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
	TripCharter   TripType = "charter"
)

// Quote is a request for a chartered bus price. Quotes are submitted
// without an account, so contact details live on the record itself.
type Quote struct {
	ID                     int64       `json:"id"`
	Reference              string      `json:"reference_number" gorm:"uniqueIndex;size:20"`
	FullName               string      `json:"full_name"`
	Phone                  string      `json:"phone_number" gorm:"size:15;index"`
	Email                  string      `json:"email,omitempty" gorm:"size:255"`
	PickupLocation         string      `json:"pickup_location"`
	Destination            string      `json:"destination"`
	TravelDate             time.Time   `json:"travel_date"`
	ReturnDate             *time.Time  `json:"return_date,omitempty"`
	Passengers             int         `json:"number_of_passengers"`
	TripType               TripType    `json:"trip_type" gorm:"size:20"`
	PreferredContactMethod string      `json:"preferred_contact_method" gorm:"size:20"`
	AdditionalRequirements string      `json:"additional_requirements,omitempty" gorm:"type:text"`
	Status                 QuoteStatus `json:"status" gorm:"size:20;index"`
	QuoteAmount            *float64    `json:"quote_amount,omitempty"`
	QuoteNotes             string      `json:"quote_notes,omitempty" gorm:"type:text"`
	QuotedAt               *time.Time  `json:"quoted_at,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}
