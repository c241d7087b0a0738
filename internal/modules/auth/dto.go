package auth

import "time"

type RegisterRequest struct {
	FullName              string     `json:"full_name" binding:"required,min=2"`
	Email                 string     `json:"email" binding:"required,email"`
	Phone                 string     `json:"phone" binding:"required,ghanaphone"`
	Password              string     `json:"password" binding:"required,min=8"`
	Region                string     `json:"region" binding:"required,ghanaregion"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	IDType                string     `json:"id_type"`
	IDNumber              string     `json:"id_number"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone" binding:"omitempty,ghanaphone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName              string `json:"full_name,omitempty"`
	Phone                 string `json:"phone,omitempty" binding:"omitempty,ghanaphone"`
	Region                string `json:"region,omitempty" binding:"omitempty,ghanaregion"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" binding:"omitempty,ghanaphone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// BookingTally is the booking rollup shown on the profile. Upcoming
// folds pending and confirmed together, which is what a rider thinks
// of as "my next trips".
type BookingTally struct {
	Total      int64   `json:"total"`
	Upcoming   int64   `json:"upcoming"`
	Completed  int64   `json:"completed"`
	Cancelled  int64   `json:"cancelled"`
	TotalSpent float64 `json:"total_spent"`
}
