package repository

import (
	"context"
	"errors"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, ref string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error) {
	var payments []domain.Payment
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("user_id = ?", userID)
	q.Count(&total)

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

// MarkProcessing moves a freshly created payment into processing once
// the gateway accepts it.
func (r *PaymentRepository) MarkProcessing(ctx context.Context, id int64, gatewayTxnID string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, domain.PaymentRecordPending).
		Updates(map[string]interface{}{
			"status":         domain.PaymentRecordProcessing,
			"gateway_txn_id": gatewayTxnID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatusTransition
	}
	return nil
}

// MarkSuccessful settles a payment and confirms its booking in one
// transaction. A replayed webhook for an already successful payment
// reports changed=false and touches nothing.
func (r *PaymentRepository) MarkSuccessful(ctx context.Context, reference, gatewayTxnID string, at time.Time) (bool, error) {
	var changed bool
	err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		changed = false

		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).First(&p).Error; err != nil {
			return err
		}

		switch p.Status {
		case domain.PaymentRecordSuccessful:
			changed = false
			return nil
		case domain.PaymentRecordPending, domain.PaymentRecordProcessing:
		default:
			return ErrInvalidStatusTransition
		}

		res := tx.Model(&domain.Payment{}).
			Where("id = ? AND status IN ?", p.ID, []string{
				string(domain.PaymentRecordPending),
				string(domain.PaymentRecordProcessing),
			}).
			Updates(map[string]interface{}{
				"status":         domain.PaymentRecordSuccessful,
				"gateway_txn_id": gatewayTxnID,
				"paid_at":        at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		if _, err := markBookingPaid(tx, p.BookingID); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// MarkFailed records a gateway failure. Payments already in a final
// state are left alone.
func (r *PaymentRepository) MarkFailed(ctx context.Context, reference, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).First(&p).Error; err != nil {
			return err
		}
		if p.Status.Final() {
			return nil
		}
		return tx.Model(&domain.Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"status":         domain.PaymentRecordFailed,
				"failure_reason": reason,
			}).Error
	})
}

// Refund reverses a successful payment and records the refund on its
// booking, releasing the seats if the booking was still active. Calling
// it again reports changed=false.
func (r *PaymentRepository) Refund(ctx context.Context, paymentID int64, at time.Time) (bool, error) {
	var changed bool
	err := runTxn(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		changed = false

		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, paymentID).Error; err != nil {
			return err
		}

		switch p.Status {
		case domain.PaymentRecordRefunded:
			changed = false
			return nil
		case domain.PaymentRecordSuccessful:
		default:
			return ErrInvalidStatusTransition
		}

		res := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentRecordSuccessful).
			Updates(map[string]interface{}{
				"status":      domain.PaymentRecordRefunded,
				"refunded_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		if _, err := markBookingRefunded(tx, p.BookingID, at); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// RefundForBooking refunds the successful payment of a booking if one
// exists. Bookings that were never paid report changed=false.
func (r *PaymentRepository) RefundForBooking(ctx context.Context, bookingID int64, at time.Time) (bool, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, domain.PaymentRecordSuccessful).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return r.Refund(ctx, p.ID, at)
}

// PaymentBreakdown is one row of a grouped payment aggregation.
type PaymentBreakdown struct {
	Key    string  `json:"key"`
	Count  int64   `json:"count"`
	Amount float64 `json:"total_amount"`
}

type PaymentStats struct {
	Total            int64              `json:"total"`
	TotalAmount      float64            `json:"total_amount"`
	Pending          int64              `json:"pending"`
	Processing       int64              `json:"processing"`
	Successful       int64              `json:"successful"`
	SuccessfulAmount float64            `json:"successful_amount"`
	Failed           int64              `json:"failed"`
	Cancelled        int64              `json:"cancelled"`
	Refunded         int64              `json:"refunded"`
	RefundedAmount   float64            `json:"refunded_amount"`
	ByMethod         []PaymentBreakdown `json:"by_method"`
	ByMomoProvider   []PaymentBreakdown `json:"by_momo_provider"`
}

/// Stats aggregates payment counts and sums for the admin dashboard:
// per status, per method, and per mobile money provider.
func (r *PaymentRepository) Stats(ctx context.Context) (*PaymentStats, error) {
	var rows []struct {
		Status string
		N      int64
		Amount float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("status, COUNT(1) AS n, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &PaymentStats{}
	for _, row := range rows {
		stats.Total += row.N
		stats.TotalAmount += row.Amount
		switch domain.PaymentRecordStatus(row.Status) {
		case domain.PaymentRecordPending:
			stats.Pending = row.N
		case domain.PaymentRecordProcessing:
			stats.Processing = row.N
		case domain.PaymentRecordSuccessful:
			stats.Successful = row.N
			stats.SuccessfulAmount = row.Amount
		case domain.PaymentRecordFailed:
			stats.Failed = row.N
		case domain.PaymentRecordCancelled:
			stats.Cancelled = row.N
		case domain.PaymentRecordRefunded:
			stats.Refunded = row.N
			stats.RefundedAmount = row.Amount
		}
	}

	byMethod, err := r.breakdown(ctx, "method", nil)
	if err != nil {
		return nil, err
	}
	stats.ByMethod = byMethod

	byProvider, err := r.breakdown(ctx, "momo_provider", map[string]interface{}{"method": domain.PayMobileMoney})
	if err != nil {
		return nil, err
	}
	stats.ByMomoProvider = byProvider

	return stats, nil
}

func (r *PaymentRepository) breakdown(ctx context.Context, column string, where map[string]interface{}) ([]PaymentBreakdown, error) {
	var rows []struct {
		Key    string
		N      int64
		Amount float64
	}
	q := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select(column + " AS key, COUNT(1) AS n, COALESCE(SUM(amount), 0) AS amount")
	if where != nil {
		q = q.Where(where)
	}
	err := q.Group(column).Order("n DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PaymentBreakdown, 0, len(rows))
	for _, row := range rows {
		out = append(out, PaymentBreakdown{Key: row.Key, Count: row.N, Amount: row.Amount})
	}
	return out, nil
}
