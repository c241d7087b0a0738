package domain

import "time"

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email" validate:"required,email" gorm:"uniqueIndex;size:255"`
	Phone                 string     `json:"phone" gorm:"uniqueIndex;size:15"`
	PasswordHash          string     `json:"-"`
	Role                  UserRole   `json:"role" gorm:"size:20"`
	FullName              string     `json:"full_name"`
	Region                string     `json:"region,omitempty" gorm:"size:20"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	IDType                string     `json:"id_type,omitempty" gorm:"size:30"`
	IDNumber              string     `json:"id_number,omitempty" gorm:"size:30"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty" gorm:"size:15"`
	IsActive              bool       `json:"is_active" gorm:"default:true"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
