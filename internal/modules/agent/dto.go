package agent

// RegisterAgentRequest is the public application form for joining the
// agent network.
type RegisterAgentRequest struct {
	FullName     string `json:"full_name" binding:"required,min=2"`
	Phone        string `json:"phone_number" binding:"required,ghanaphone"`
	Email        string `json:"email" binding:"required,email"`
	IDType       string `json:"id_type" binding:"required"`
	IDNumber     string `json:"id_number" binding:"required"`
	Region       string `json:"region" binding:"required,ghanaregion"`
	CityTown     string `json:"city_town" binding:"required,min=2"`
	AreaSuburb   string `json:"area_suburb"`
	MomoProvider string `json:"mobile_money_provider" binding:"required,momoprovider"`
	MomoNumber   string `json:"mobile_money_number" binding:"required,ghanaphone"`
	Availability string `json:"availability" binding:"required"`
	ReferralCode string `json:"referral_code"`
	WhyJoin      string `json:"why_join" binding:"required,min=10"`
}

// ReviewAgentRequest approves or rejects a pending application.
type ReviewAgentRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}
