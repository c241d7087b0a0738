package domain

import "time"

type PaymentMethod string

const (
	PayMobileMoney  PaymentMethod = "mobile_money"
	PayCard         PaymentMethod = "card"
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayCash         PaymentMethod = "cash"
	PayWallet       PaymentMethod = "wallet"
)

type MomoProvider string

const (
	MomoMTN        MomoProvider = "mtn_momo"
	MomoVodafone   MomoProvider = "vodafone_cash"
	MomoAirtelTigo MomoProvider = "airteltigo_money"
)

type PaymentRecordStatus string

const (
	PaymentRecordPending    PaymentRecordStatus = "pending"
	PaymentRecordProcessing PaymentRecordStatus = "processing"
	PaymentRecordSuccessful PaymentRecordStatus = "successful"
	PaymentRecordFailed     PaymentRecordStatus = "failed"
	PaymentRecordCancelled  PaymentRecordStatus = "cancelled"
	PaymentRecordRefunded   PaymentRecordStatus = "refunded"
)

// Payment tracks one attempt to pay for a booking. A booking may have
// several failed payments but at most one successful one.
type Payment struct {
	ID            int64               `json:"id"`
	Reference     string              `json:"reference_number" gorm:"uniqueIndex;size:40"`
	BookingID     int64               `json:"booking_id" gorm:"index"`
	Booking       *Booking            `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	UserID        int64               `json:"user_id" gorm:"index"`
	Amount        float64             `json:"amount"`
	Method        PaymentMethod       `json:"payment_method" gorm:"size:20"`
	MomoProvider  MomoProvider        `json:"momo_provider,omitempty" gorm:"size:20"`
	MomoNumber    string              `json:"momo_number,omitempty" gorm:"size:15"`
	Status        PaymentRecordStatus `json:"status" gorm:"size:20;index"`
	GatewayTxnID  string              `json:"gateway_transaction_id,omitempty" gorm:"index;size:64"`
	FailureReason string              `json:"failure_reason,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	RefundedAt    *time.Time          `json:"refunded_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (s PaymentRecordStatus) Final() bool {
	switch s {
	case PaymentRecordSuccessful, PaymentRecordFailed, PaymentRecordCancelled, PaymentRecordRefunded:
		return true
	}
	return false
}
