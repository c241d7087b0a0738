package domain

// SequenceCounter backs sequential reference numbers. One row per
// counter name (for example "booking:AG:202501"), bumped atomically
// inside the transaction that consumes the value.
type SequenceCounter struct {
	Name      string `json:"name" gorm:"primaryKey;size:64"`
	LastValue int64  `json:"last_value"`
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
