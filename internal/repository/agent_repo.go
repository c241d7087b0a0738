package repository

import (
	"context"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var a domain.Agent
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) GetByReference(ctx context.Context, ref string) (*domain.Agent, error) {
	var a domain.Agent
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) ExistsByPhoneOrEmail(ctx context.Context, phone, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Agent{}).
		Where("phone = ? OR email = ?", phone, email).
		Count(&n).Error
	return n > 0, err
}

type AgentFilters struct {
	Status domain.AgentStatus
	Region string
	Limit  int
	Offset int
}

func (r *AgentRepository) List(ctx context.Context, f AgentFilters) ([]domain.Agent, int64, error) {
	var agents []domain.Agent
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Agent{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}

	q.Count(&total)

	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&agents).Error
	return agents, total, err
}

// SetStatus reviews a pending application. Only pending applications
// can move, so repeated reviews do not overwrite each other.
func (r *AgentRepository) SetStatus(ctx context.Context, id int64, status domain.AgentStatus, notes string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Agent{}).
		Where("id = ? AND status = ?", id, domain.AgentPending).
		Updates(map[string]interface{}{
			"status":            status,
			"admin_notes":       notes,
			"status_updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Agent{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}
