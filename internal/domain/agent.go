package domain

import "time"

type AgentStatus string

const (
	AgentPending  AgentStatus = "pending"
	AgentApproved AgentStatus = "approved"
	AgentRejected AgentStatus = "rejected"
)

type Agent struct {
	ID              int64       `json:"id"`
	Reference       string      `json:"reference_number" gorm:"uniqueIndex;size:20"`
	FullName        string      `json:"full_name"`
	Phone           string      `json:"phone_number" gorm:"uniqueIndex;size:15"`
	Email           string      `json:"email" gorm:"uniqueIndex;size:255"`
	IDType          string      `json:"id_type" gorm:"size:30"`
	IDNumber        string      `json:"id_number" gorm:"size:30"`
	Region          string      `json:"region" gorm:"size:20"`
	CityTown        string      `json:"city_town"`
	AreaSuburb      string      `json:"area_suburb"`
	MomoProvider    string      `json:"mobile_money_provider" gorm:"size:20"`
	MomoNumber      string      `json:"mobile_money_number" gorm:"size:15"`
	Availability    string      `json:"availability" gorm:"size:30"`
	ReferralCode    string      `json:"referral_code,omitempty" gorm:"size:20"`
	WhyJoin         string      `json:"why_join" gorm:"type:text"`
	Status          AgentStatus `json:"status" gorm:"size:20;index"`
	AdminNotes      string      `json:"admin_notes,omitempty" gorm:"type:text"`
	StatusUpdatedAt *time.Time  `json:"status_updated_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
