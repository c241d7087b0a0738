package quote

import "time"

// CreateQuoteRequest is the public charter request form. No account is
// needed, so the requester's contact details ride along.
type CreateQuoteRequest struct {
	FullName               string     `json:"full_name" binding:"required,min=2"`
	Phone                  string     `json:"phone_number" binding:"required,ghanaphone"`
	Email                  string     `json:"email" binding:"required,email"`
	PickupLocation         string     `json:"pickup_location" binding:"required,min=2"`
	Destination            string     `json:"destination" binding:"required,min=2"`
	TravelDate             time.Time  `json:"travel_date" binding:"required"`
	ReturnDate             *time.Time `json:"return_date,omitempty"`
	Passengers             int        `json:"number_of_passengers" binding:"required,min=1,max=100"`
	TripType               string     `json:"trip_type" binding:"required"`
	PreferredContactMethod string     `json:"preferred_contact_method" binding:"required"`
	AdditionalRequirements string     `json:"additional_requirements"`
}

// RespondQuoteRequest attaches a price to a pending request.
type RespondQuoteRequest struct {
	Amount float64 `json:"quote_amount" binding:"required,gt=0"`
	Notes  string  `json:"quote_notes"`
}

// UpdateQuoteStatusRequest settles a quoted request (accepted,
// rejected) or closes out a finished charter (completed).
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
