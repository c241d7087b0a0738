package repository

import (
	"context"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Reference          string     `gorm:"column:reference"`
	UserID             int64      `gorm:"column:user_id"`
	TripID             int64      `gorm:"column:trip_id"`
	Seats              int        `gorm:"column:seats"`
	FarePerSeat        float64    `gorm:"column:fare_per_seat"`
	TotalFare          float64    `gorm:"column:total_fare"`
	BookingFee         float64    `gorm:"column:booking_fee"`
	TotalAmount        float64    `gorm:"column:total_amount"`
	Status             string     `gorm:"column:status"`
	PaymentStatus      string     `gorm:"column:payment_status"`
	PaymentDeadline    time.Time  `gorm:"column:payment_deadline"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		Reference:          m.Reference,
		UserID:             m.UserID,
		TripID:             m.TripID,
		Seats:              m.Seats,
		FarePerSeat:        m.FarePerSeat,
		TotalFare:          m.TotalFare,
		BookingFee:         m.BookingFee,
		TotalAmount:        m.TotalAmount,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		PaymentDeadline:    m.PaymentDeadline,
		CancelledAt:        m.CancelledAt,
		CancellationReason: reason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		Reference:          b.Reference,
		UserID:             b.UserID,
		TripID:             b.TripID,
		Seats:              b.Seats,
		FarePerSeat:        b.FarePerSeat,
		TotalFare:          b.TotalFare,
		BookingFee:         b.BookingFee,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentDeadline:    b.PaymentDeadline,
		CancelledAt:        b.CancelledAt,
		CancellationReason: reason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// CreateWithSeats reserves the seats and inserts the booking in one
// transaction. If the insert fails, including on a duplicate reference,
// the reservation rolls back with it and no seats are lost.
func (r *BookingRepository) CreateWithSeats(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := reserveTripSeats(tx, m.TripID, m.Seats); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("reference = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

type BookingFilters struct {
	Status domain.BookingStatus
	TripID int64
	Limit  int
	Offset int
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, f BookingFilters) ([]domain.Booking, int64, error) {
	return listBookings(r.db.WithContext(ctx).Model(&bookingModel{}).Where("user_id = ?", userID), f)
}

// List returns bookings across all users for the operations dashboard.
func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, int64, error) {
	return listBookings(r.db.WithContext(ctx).Model(&bookingModel{}), f)
}

func listBookings(q *gorm.DB, f BookingFilters) ([]domain.Booking, int64, error) {
	var models []bookingModel
	var total int64

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TripID > 0 {
		q = q.Where("trip_id = ?", f.TripID)
	}

	q.Count(&total)

	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

func (r *BookingRepository) ListByTrip(ctx context.Context, tripID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

var activeBookingStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
}

// Cancel flips an active booking to cancelled and hands its seats back.
// Calling it again on an already cancelled or refunded booking is a
// no-op, so the seats can never be released twice.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, at time.Time) (*domain.Booking, bool, error) {
	var out *domain.Booking
	var released bool

	err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		out, released = nil, false

		var m bookingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			return err
		}

		switch domain.BookingStatus(m.Status) {
		case domain.BookingCancelled, domain.BookingRefunded:
			out = toDomainBooking(m)
			return nil
		case domain.BookingCompleted:
			return ErrInvalidStatusTransition
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status IN ?", id, activeBookingStatuses).
			Updates(map[string]interface{}{
				"status":              domain.BookingCancelled,
				"cancelled_at":        at,
				"cancellation_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		if err := releaseTripSeats(tx, m.TripID, m.Seats); err != nil {
			return err
		}
		released = true

		m.Status = string(domain.BookingCancelled)
		m.CancelledAt = &at
		m.CancellationReason = &reason
		out = toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, released, nil
}

var inFlightPaymentStatuses = []string{
	string(domain.PaymentRecordPending),
	string(domain.PaymentRecordProcessing),
}

// ExpireStale cancels pending bookings whose payment deadline passed
// before cutoff and hands their seats back. Bookings with a payment
// still in flight at the gateway are skipped so a late webhook can
// settle them. Returns how many bookings were cancelled.
func (r *BookingRepository) ExpireStale(ctx context.Context, cutoff time.Time, reason string, at time.Time) (int64, error) {
	inFlight := r.db.Model(&domain.Payment{}).
		Select("booking_id").
		Where("status IN ?", inFlightPaymentStatuses)

	var ids []int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ? AND payment_deadline < ?", domain.BookingPending, cutoff).
		Where("id NOT IN (?)", inFlight).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}

	var expired int64
	for _, id := range ids {
		var swept bool
		err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
			swept = false

			var m bookingModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
				return err
			}
			// A webhook may have confirmed the booking since the scan.
			if domain.BookingStatus(m.Status) != domain.BookingPending {
				return nil
			}

			res := tx.Model(&bookingModel{}).
				Where("id = ? AND status = ?", id, domain.BookingPending).
				Updates(map[string]interface{}{
					"status":              domain.BookingCancelled,
					"cancelled_at":        at,
					"cancellation_reason": reason,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConcurrentModification
			}

			if err := releaseTripSeats(tx, m.TripID, m.Seats); err != nil {
				return err
			}
			swept = true
			return nil
		})
		if err != nil {
			return expired, err
		}
		if swept {
			expired++
		}
	}
	return expired, nil
}

// CancelForTrip cancels every active booking on a trip and returns
// their IDs. Seats are not released because the trip itself is gone.
func (r *BookingRepository) CancelForTrip(ctx context.Context, tripID int64, reason string, at time.Time) ([]int64, error) {
	var ids []int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookingModel{}).
			Where("trip_id = ? AND status IN ?", tripID, activeBookingStatuses).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&bookingModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":              domain.BookingCancelled,
				"cancelled_at":        at,
				"cancellation_reason": reason,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CompleteForTrip marks the confirmed bookings of a finished trip as
// completed and returns how many rows changed.
func (r *BookingRepository) CompleteForTrip(ctx context.Context, tripID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("trip_id = ? AND status = ?", tripID, domain.BookingConfirmed).
		Update("status", domain.BookingCompleted)
	return res.RowsAffected, res.Error
}

// Complete marks a single confirmed booking completed. Seats are not
// released, the passenger travelled on them.
func (r *BookingRepository) Complete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, domain.BookingConfirmed).
		Update("status", domain.BookingCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}

// MarkPaid confirms a pending booking after a successful payment.
// Already confirmed bookings report changed=false so webhook replays
// stay harmless.
func (r *BookingRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	var changed bool
	err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var err error
		changed, err = markBookingPaid(tx, id)
		return err
	})
	return changed, err
}

func markBookingPaid(tx *gorm.DB, id int64) (bool, error) {
	var m bookingModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
		return false, err
	}

	switch domain.BookingStatus(m.Status) {
	case domain.BookingConfirmed:
		return false, nil
	case domain.BookingPending:
	default:
		return false, ErrInvalidStatusTransition
	}

	res := tx.Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, domain.BookingPending).
		Updates(map[string]interface{}{
			"status":         domain.BookingConfirmed,
			"payment_status": domain.PaymentPaid,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrConcurrentModification
	}
	return true, nil
}

// markBookingRefunded records a refund on the booking. Seats go back
// only when the booking was still active; a booking cancelled earlier
// released them at cancellation time.
func markBookingRefunded(tx *gorm.DB, id int64, at time.Time) (bool, error) {
	var m bookingModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
		return false, err
	}

	switch domain.BookingStatus(m.Status) {
	case domain.BookingRefunded:
		return false, nil
	case domain.BookingCompleted:
		return false, ErrInvalidStatusTransition
	case domain.BookingCancelled:
		res := tx.Model(&bookingModel{}).
			Where("id = ?", id).
			Update("payment_status", domain.PaymentRefunded)
		if res.Error != nil {
			return false, res.Error
		}
		return false, nil
	}

	res := tx.Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id, activeBookingStatuses).
		Updates(map[string]interface{}{
			"status":         domain.BookingRefunded,
			"payment_status": domain.PaymentRefunded,
			"cancelled_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrConcurrentModification
	}

	if err := releaseTripSeats(tx, m.TripID, m.Seats); err != nil {
		return false, err
	}
	return true, nil
}

type BookingStats struct {
	Total      int64   `json:"total"`
	Pending    int64   `json:"pending"`
	Confirmed  int64   `json:"confirmed"`
	Completed  int64   `json:"completed"`
	Cancelled  int64   `json:"cancelled"`
	Refunded   int64   `json:"refunded"`
	TotalSpent float64 `json:"total_spent"`
}

func (r *BookingRepository) GetStatsByUser(ctx context.Context, userID int64) (*BookingStats, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("status, COUNT(1) AS n").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &BookingStats{}
	for _, row := range rows {
		stats.Total += row.N
		switch domain.BookingStatus(row.Status) {
		case domain.BookingPending:
			stats.Pending = row.N
		case domain.BookingConfirmed:
			stats.Confirmed = row.N
		case domain.BookingCompleted:
			stats.Completed = row.N
		case domain.BookingCancelled:
			stats.Cancelled = row.N
		case domain.BookingRefunded:
			stats.Refunded = row.N
		}
	}

	err = r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("user_id = ? AND payment_status = ?", userID, domain.PaymentPaid).
		Scan(&stats.TotalSpent).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
